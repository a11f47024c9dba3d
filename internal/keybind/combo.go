package keybind

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Modifier names in canonical order.
const (
	ModCtrl  = "Ctrl"
	ModAlt   = "Alt"
	ModShift = "Shift"
	ModSuper = "Super"
)

var modifierOrder = []string{ModCtrl, ModAlt, ModShift, ModSuper}

var modifierAliases = map[string]string{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"shift":   ModShift,
	"super":   ModSuper,
	"meta":    ModSuper,
	"cmd":     ModSuper,
}

// Combo is a parsed key combination.
type Combo struct {
	Modifiers []string // canonical order, no duplicates
	Key       string   // single character, or a named key such as "Escape"
}

// String renders the canonical form, e.g. "Ctrl+Shift+q".
func (c Combo) String() string {
	if len(c.Modifiers) == 0 {
		return c.Key
	}
	return strings.Join(c.Modifiers, "+") + "+" + c.Key
}

// Has reports whether the combination includes the modifier.
func (c Combo) Has(mod string) bool {
	for _, m := range c.Modifiers {
		if m == mod {
			return true
		}
	}
	return false
}

// Named reports whether Key is a named key rather than a single character.
func (c Combo) Named() bool {
	return utf8.RuneCountInString(c.Key) > 1
}

// ParseCombo parses "Ctrl+q", "Shift+r", "Escape", "+", "Ctrl++" and the
// like. Modifier names are case-insensitive; single-character keys keep
// their case; all-lowercase named keys are capitalised ("escape" becomes
// "Escape").
func ParseCombo(s string) (Combo, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Combo{}, fmt.Errorf("empty key combination")
	}

	var key, prefix string
	switch {
	case s == "+":
		key = "+"
	case strings.HasSuffix(s, "++"):
		key = "+"
		prefix = strings.TrimSuffix(s, "++")
	default:
		i := strings.LastIndex(s, "+")
		if i < 0 {
			key = s
		} else {
			key = s[i+1:]
			prefix = s[:i]
		}
	}
	if key == "" {
		return Combo{}, fmt.Errorf("key combination %q has no key", s)
	}

	seen := make(map[string]bool)
	if prefix != "" {
		for _, part := range strings.Split(prefix, "+") {
			mod, ok := modifierAliases[strings.ToLower(strings.TrimSpace(part))]
			if !ok {
				return Combo{}, fmt.Errorf("key combination %q: unknown modifier %q", s, part)
			}
			seen[mod] = true
		}
	}
	var mods []string
	for _, m := range modifierOrder {
		if seen[m] {
			mods = append(mods, m)
		}
	}

	if utf8.RuneCountInString(key) > 1 && key == strings.ToLower(key) {
		key = strings.ToUpper(key[:1]) + key[1:]
	}
	return Combo{Modifiers: mods, Key: key}, nil
}

// Normalize returns the canonical string for a key combination, or the
// trimmed input when it cannot be parsed.
func Normalize(s string) string {
	c, err := ParseCombo(s)
	if err != nil {
		return strings.TrimSpace(s)
	}
	return c.String()
}
