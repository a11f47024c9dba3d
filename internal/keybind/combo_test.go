package keybind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCombo(t *testing.T) {
	tests := []struct {
		in        string
		wantMods  []string
		wantKey   string
		wantCanon string
	}{
		{"Ctrl+q", []string{ModCtrl}, "q", "Ctrl+q"},
		{"shift+ctrl+W", []string{ModCtrl, ModShift}, "W", "Ctrl+Shift+W"},
		{"Shift+r", []string{ModShift}, "r", "Shift+r"},
		{"escape", nil, "Escape", "Escape"},
		{"Left", nil, "Left", "Left"},
		{"PageUp", nil, "PageUp", "PageUp"},
		{"+", nil, "+", "+"},
		{"Ctrl++", []string{ModCtrl}, "+", "Ctrl++"},
		{":", nil, ":", ":"},
		{"7", nil, "7", "7"},
		{"cmd+o", []string{ModSuper}, "o", "Super+o"},
	}
	for _, tt := range tests {
		c, err := ParseCombo(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.wantMods, c.Modifiers, tt.in)
		assert.Equal(t, tt.wantKey, c.Key, tt.in)
		assert.Equal(t, tt.wantCanon, c.String(), tt.in)
	}
}

func TestParseComboErrors(t *testing.T) {
	for _, bad := range []string{"", "  ", "Hyper+x", "Ctrl+"} {
		_, err := ParseCombo(bad)
		assert.Error(t, err, bad)
	}
}

func TestComboHelpers(t *testing.T) {
	c, err := ParseCombo("Ctrl+Shift+Escape")
	require.NoError(t, err)
	assert.True(t, c.Has(ModShift))
	assert.False(t, c.Has(ModAlt))
	assert.True(t, c.Named())

	c, err = ParseCombo("z")
	require.NoError(t, err)
	assert.False(t, c.Named())
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "Ctrl+w", Normalize(" control+w "))
	assert.Equal(t, "Hyper+x", Normalize("Hyper+x"))
}
