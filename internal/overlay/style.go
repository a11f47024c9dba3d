package overlay

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Configuration errors for text styling.
var (
	ErrInvalidColor = errors.New("invalid color")
	ErrInvalidFont  = errors.New("invalid font")
)

// Default text styling.
const (
	DefaultFamily = "monospace"
	DefaultSize   = 10
)

// Align is the horizontal alignment of overlay text.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Font describes the face used for overlay text.
type Font struct {
	Family    string
	Size      float32
	Bold      bool
	Italic    bool
	Monospace bool
}

// DefaultFont is the face used when nothing is configured.
func DefaultFont() Font {
	return Font{Family: DefaultFamily, Size: DefaultSize, Monospace: true}
}

// Style collects the drawing rules applied to text added after it is set.
type Style struct {
	Color        color.NRGBA
	OutlineColor color.NRGBA
	Outline      bool
	Align        Align
	Font         Font
}

// DefaultStyle is white outlined text in the default font.
func DefaultStyle() Style {
	return Style{
		Color:        color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		OutlineColor: color.NRGBA{A: 255},
		Outline:      true,
		Align:        AlignLeft,
		Font:         DefaultFont(),
	}
}

var namedColors = map[string]color.NRGBA{
	"white":       {R: 255, G: 255, B: 255, A: 255},
	"black":       {A: 255},
	"red":         {R: 255, A: 255},
	"green":       {G: 128, A: 255},
	"lime":        {G: 255, A: 255},
	"blue":        {B: 255, A: 255},
	"yellow":      {R: 255, G: 255, A: 255},
	"cyan":        {G: 255, B: 255, A: 255},
	"magenta":     {R: 255, B: 255, A: 255},
	"orange":      {R: 255, G: 165, A: 255},
	"gray":        {R: 128, G: 128, B: 128, A: 255},
	"grey":        {R: 128, G: 128, B: 128, A: 255},
	"transparent": {},
}

// ParseColor accepts a color name, "#rgb", "#rrggbb", "#aarrggbb" or a
// comma-separated "r,g,b" / "r,g,b,a" tuple of 0-255 components.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}
	if strings.Contains(s, ",") {
		return parseTuple(s)
	}
	return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func parseHex(s string) (color.NRGBA, error) {
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w: %q: expected 3, 6 or 8 hexadecimal digits", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	c := color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
	if len(hex) == 8 {
		c.A = uint8(v >> 24)
	}
	return c, nil
}

func parseTuple(s string) (color.NRGBA, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, fmt.Errorf("%w: %q: expected 3 or 4 components", ErrInvalidColor, s)
	}
	var v [4]uint8
	v[3] = 255
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q: component %d", ErrInvalidColor, s, i+1)
		}
		v[i] = uint8(n)
	}
	return color.NRGBA{R: v[0], G: v[1], B: v[2], A: v[3]}, nil
}

// ParseFont reads comma-separated fields over base: a bare number is the
// point size, "bold" and "italic" set those flags and anything else is the
// family. "Sans,14,bold" and "12" are both valid.
func ParseFont(s string, base Font) (Font, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Font{}, fmt.Errorf("%w: empty font", ErrInvalidFont)
	}
	f := base
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		switch strings.ToLower(field) {
		case "":
			return Font{}, fmt.Errorf("%w: %q: empty field", ErrInvalidFont, s)
		case "bold":
			f.Bold = true
			continue
		case "italic":
			f.Italic = true
			continue
		}
		if n, err := strconv.ParseFloat(field, 32); err == nil {
			if n <= 0 {
				return Font{}, fmt.Errorf("%w: %q: size must be positive", ErrInvalidFont, s)
			}
			f.Size = float32(n)
			continue
		}
		f.Family = field
		f.Monospace = strings.Contains(strings.ToLower(field), "mono")
	}
	return f, nil
}
