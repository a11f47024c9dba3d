// Package valuefmt converts byte counts, timestamps and size strings into
// display or pixel values. Everything here is pure.
package valuefmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultSizeFormat renders "<num> <suffix>".
const DefaultSizeFormat = "{num} {suffix}"

var sizePrefixes = []string{"", "K", "M", "G", "T", "P"}

type sizeConfig struct {
	places   int
	noRound  bool
	base     int
	template string
}

// SizeOption customises FormatSize.
type SizeOption func(*sizeConfig)

// WithPlaces rounds the scaled value to p decimal places. Zero renders an
// integer.
func WithPlaces(p int) SizeOption {
	return func(c *sizeConfig) {
		c.places = p
		c.noRound = false
	}
}

// WithoutRounding renders the scaled value at full precision.
func WithoutRounding() SizeOption {
	return func(c *sizeConfig) { c.noRound = true }
}

// WithBase selects 1024 (base 2) or 1000 (base 10) scaling.
func WithBase(b int) SizeOption {
	return func(c *sizeConfig) { c.base = b }
}

// WithFormat sets the output template. It must contain "{num}" and
// "{suffix}".
func WithFormat(f string) SizeOption {
	return func(c *sizeConfig) { c.template = f }
}

// FormatSize formats a byte count using the largest unit that keeps the
// scaled value below the scale threshold. Petabytes absorb any overflow.
//
// Base 10 scaling labels units with "iB" (KiB, MiB, ...) once the value
// reaches 1000; smaller values stay in "B". Passing a base other than 2 or
// 10 is a programming error and panics.
func FormatSize(numBytes float64, opts ...SizeOption) string {
	cfg := sizeConfig{places: 2, base: 2, template: DefaultSizeFormat}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.base != 2 && cfg.base != 10 {
		panic(fmt.Sprintf("valuefmt: invalid base %d; must be 2 or 10", cfg.base))
	}

	scale, suffix := 1024.0, "B"
	if cfg.base == 10 {
		scale = 1000.0
		if numBytes >= scale {
			suffix = "iB"
		}
	}

	exponent := 0
	value := numBytes
	for value >= scale && exponent+1 < len(sizePrefixes) {
		value /= scale
		exponent++
	}

	var num string
	switch {
	case cfg.noRound:
		num = formatFloat(value)
	case cfg.places <= 0:
		num = strconv.FormatInt(int64(math.Round(value)), 10)
	default:
		pow := math.Pow(10, float64(cfg.places))
		num = formatFloat(math.Round(value*pow) / pow)
	}

	r := strings.NewReplacer("{num}", num, "{suffix}", sizePrefixes[exponent]+suffix)
	return r.Replace(cfg.template)
}

// formatFloat renders the shortest representation, always keeping a
// fractional part so 1 prints as "1.0".
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
