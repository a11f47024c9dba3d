package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Binding is one keymap entry. Exactly one of Command or Action is set:
// Command is a shell command run with the current image path as $1,
// Action names a built-in action and Args are its bound arguments.
type Binding struct {
	Key     string `yaml:"key"`
	Command string `yaml:"command,omitempty"`
	Action  string `yaml:"action,omitempty"`
	Args    []any  `yaml:"args,omitempty"`
}

// Keymap is the on-disk keymap document.
type Keymap struct {
	Bindings []Binding `yaml:"bindings"`
}

// LoadKeymap reads a YAML keymap file.
func LoadKeymap(path string) (*Keymap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keymap: %w", err)
	}
	return ParseKeymap(data)
}

// ParseKeymap decodes and validates a keymap document.
func ParseKeymap(data []byte) (*Keymap, error) {
	var km Keymap
	if err := yaml.Unmarshal(data, &km); err != nil {
		return nil, fmt.Errorf("parse keymap: %w", err)
	}
	var errs []error
	for i, b := range km.Bindings {
		switch {
		case b.Key == "":
			errs = append(errs, fmt.Errorf("binding %d: missing key", i+1))
		case b.Command == "" && b.Action == "":
			errs = append(errs, fmt.Errorf("binding %d (%s): needs command or action", i+1, b.Key))
		case b.Command != "" && b.Action != "":
			errs = append(errs, fmt.Errorf("binding %d (%s): command and action are exclusive", i+1, b.Key))
		case b.Command != "" && len(b.Args) > 0:
			errs = append(errs, fmt.Errorf("binding %d (%s): args only apply to actions", i+1, b.Key))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &km, nil
}
