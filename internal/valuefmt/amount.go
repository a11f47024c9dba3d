package valuefmt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidAmount is returned for size strings that are neither a pixel
// count nor a percentage.
var ErrInvalidAmount = errors.New("invalid amount")

// InterpretAmount resolves a size string against the interval
// [minval, maxval]. An empty value means maxval, "N%" interpolates between
// the bounds, and anything else must be an integer pixel count.
func InterpretAmount(value string, minval, maxval int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return maxval, nil
	}
	if pct, ok := strings.CutSuffix(value, "%"); ok {
		p, err := strconv.ParseFloat(strings.TrimSpace(pct), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a percentage", ErrInvalidAmount, value)
		}
		if p < 0 {
			return 0, fmt.Errorf("%w: negative percentage %q", ErrInvalidAmount, value)
		}
		return int(p/100*float64(maxval-minval) + float64(minval)), nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is neither pixels nor a percentage", ErrInvalidAmount, value)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative size %q", ErrInvalidAmount, value)
	}
	return n, nil
}
