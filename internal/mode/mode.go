// Package mode tracks which kind of text input the window is collecting.
package mode

import "fmt"

// Mode is the single active kind of pending text input.
type Mode int

// Modes. None is both the initial state and the state between inputs.
const (
	None Mode = iota
	Rename
	Goto
	SetImage
	Label
	Command
)

var names = [...]string{
	None:     "none",
	Rename:   "rename",
	Goto:     "goto",
	SetImage: "set-image",
	Label:    "label",
	Command:  "command",
}

// All lists every mode in declaration order.
func All() []Mode {
	return []Mode{None, Rename, Goto, SetImage, Label, Command}
}

// String returns the mode's name.
func (m Mode) String() string {
	if m.Valid() {
		return names[m]
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool {
	return m >= None && m <= Command
}

// Prompt is the placeholder shown in the input box while m is active.
func (m Mode) Prompt() string {
	switch m {
	case Rename:
		return "Rename to..."
	case Goto:
		return "Go to index or name..."
	case SetImage:
		return "Find image (glob or fuzzy)..."
	case Label:
		return "Label..."
	case Command:
		return "Command..."
	case None:
		return ""
	}
	return ""
}

// Parse converts a mode name back into a Mode.
func Parse(s string) (Mode, error) {
	for i, n := range names {
		if n == s {
			return Mode(i), nil
		}
	}
	return None, fmt.Errorf("unknown mode %q", s)
}
