package overlay

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"white", color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{"Black", color.NRGBA{A: 255}},
		{"#f80", color.NRGBA{R: 0xff, G: 0x88, B: 0x00, A: 255}},
		{"#336699", color.NRGBA{R: 0x33, G: 0x66, B: 0x99, A: 255}},
		{"#80ff0000", color.NRGBA{R: 0xff, A: 0x80}},
		{"10, 20, 30", color.NRGBA{R: 10, G: 20, B: 30, A: 255}},
		{"1,2,3,4", color.NRGBA{R: 1, G: 2, B: 3, A: 4}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, bad := range []string{"", "chartreuse-ish", "#12", "#zzzzzz", "1,2", "1,2,300"} {
		_, err := ParseColor(bad)
		assert.ErrorIs(t, err, ErrInvalidColor, bad)
	}
}

func TestParseFont(t *testing.T) {
	f, err := ParseFont("Sans, 14, bold", DefaultFont())
	require.NoError(t, err)
	assert.Equal(t, Font{Family: "Sans", Size: 14, Bold: true}, f)

	f, err = ParseFont("12", DefaultFont())
	require.NoError(t, err)
	assert.Equal(t, "monospace", f.Family)
	assert.Equal(t, float32(12), f.Size)
	assert.True(t, f.Monospace)

	for _, bad := range []string{"", "Sans,,12", "Sans,-3"} {
		_, err := ParseFont(bad, DefaultFont())
		assert.ErrorIs(t, err, ErrInvalidFont, bad)
	}
}
