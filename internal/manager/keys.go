package manager

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"imgmanage/internal/actionlog"
	"imgmanage/internal/keybind"
	"imgmanage/internal/mode"
)

// builtin describes an action that keys and keymap files can bind by name.
type builtin struct {
	help   string
	guard  bool // blocked while the input box has focus
	action func(m *Manager, args []any) error
}

var builtins = map[string]builtin{
	"quit":        {"Close the window", false, func(m *Manager, _ []any) error { m.view.Close(); return nil }},
	"escape":      {"Cancel input, or close the window", false, (*Manager).escape},
	"prev-image":  {"Previous image", true, func(m *Manager, _ []any) error { return m.PrevImage() }},
	"next-image":  {"Next image", true, func(m *Manager, _ []any) error { return m.NextImage() }},
	"prev-many":   {"Go back several images", true, func(m *Manager, _ []any) error { return m.PrevMany() }},
	"next-many":   {"Advance several images", true, func(m *Manager, _ []any) error { return m.NextMany() }},
	"rename":      {"Rename the image", true, enter(mode.Rename)},
	"delete":      {"Mark the image for deletion and advance", true, (*Manager).deleteImage},
	"find":        {"Find an image by pattern", true, enter(mode.SetImage)},
	"goto":        {"Go to an image by number or name", true, enter(mode.Goto)},
	"label":       {"Label the image", true, enter(mode.Label)},
	"command":     {"Run a shell command on the image", true, enter(mode.Command)},
	"help":        {"Show or hide key help", true, func(m *Manager, _ []any) error { m.view.ToggleHelp(); return nil }},
	"adjust":      {"Fine-adjust the display size", true, (*Manager).adjust},
	"toggle-text": {"Show or hide the text overlay", true, func(m *Manager, _ []any) error { m.ToggleText(); return nil }},
	"toggle-zoom": {"Cycle the zoom mode", true, (*Manager).cycleScale},
	"zoom-in":     {"Zoom in", true, func(m *Manager, _ []any) error { m.view.Zoom(m.opts.ZoomStep); return nil }},
	"zoom-out":    {"Zoom out", true, func(m *Manager, _ []any) error { m.view.Zoom(-m.opts.ZoomStep); return nil }},
	"mark":        {"Mark the image with a number", true, (*Manager).mark},
	"jump-back":   {"Back to the previous jump", true, func(m *Manager, _ []any) error { return m.JumpBack() }},
	"jump-fwd":    {"Forward to the next jump", true, func(m *Manager, _ []any) error { return m.JumpForward() }},
}

func enter(target mode.Mode) func(*Manager, []any) error {
	return func(m *Manager, _ []any) error {
		m.mode.Enter(target)
		return nil
	}
}

type defaultBind struct {
	keys   string
	action string
	args   []any
}

var defaultBinds = []defaultBind{
	{"Ctrl+q", "quit", nil},
	{"Ctrl+w", "quit", nil},
	{"Escape", "escape", nil},
	{"Left", "prev-image", nil},
	{"Right", "next-image", nil},
	{"Up", "prev-many", nil},
	{"Down", "next-many", nil},
	{"Shift+r", "rename", nil},
	{"Shift+d", "delete", nil},
	{"Shift+f", "find", nil},
	{"Shift+g", "goto", nil},
	{":", "goto", nil},
	{"h", "help", nil},
	{"z", "adjust", []any{-1}},
	{"c", "adjust", []any{1}},
	{"t", "toggle-text", nil},
	{"l", "label", nil},
	{"=", "toggle-zoom", nil},
	{"/", "command", nil},
	{"_", "zoom-out", nil},
	{"+", "zoom-in", nil},
	{"Ctrl+o", "jump-back", nil},
	{"Ctrl+i", "jump-fwd", nil},
}

func (m *Manager) registerDefaults() {
	for _, b := range defaultBinds {
		m.mustBind(b.keys, b.action, b.args...)
	}
	for n := 1; n <= 9; n++ {
		m.mustBind(strconv.Itoa(n), "mark", n)
	}
	if m.opts.Write1 != "" {
		m.keys.Register("1", "write1", m.guard("write1", m.writeTo(m.opts.Write1)))
	}
	if m.opts.Write2 != "" {
		m.keys.Register("2", "write2", m.guard("write2", m.writeTo(m.opts.Write2)))
	}
}

func (m *Manager) mustBind(keys, name string, args ...any) {
	if err := m.BindAction(keys, name, args...); err != nil {
		panic(err)
	}
}

func (m *Manager) guard(name string, fn keybind.Action) keybind.Action {
	return keybind.BlockedBy(m.mode.InputFocused, m.log.Component("keybind"), name, fn)
}

// BindAction binds a built-in action by name. Binding a key that already
// has actions adds to them.
func (m *Manager) BindAction(keys, name string, args ...any) error {
	b, ok := builtins[name]
	if !ok {
		return fmt.Errorf("unknown action %q", name)
	}
	fn := func(call ...any) error { return b.action(m, call) }
	if b.guard {
		fn = m.guard(name, fn)
	}
	m.keys.Register(keys, name, fn, args...)
	return nil
}

// BindCommand binds keys to run a shell command with the current image
// path as $1. Output and failures go to the status line.
func (m *Manager) BindCommand(keys, command string) {
	m.keys.Register(keys, "run:"+command, m.guard(command, func(...any) error {
		m.runCommand(command)
		return nil
	}))
}

// Trigger runs the actions bound to keys. It reports whether keys is
// bound at all.
func (m *Manager) Trigger(keys string) bool {
	if _, ok := m.keys.Lookup(keys); !ok {
		return false
	}
	if err := m.keys.Trigger(keys); err != nil {
		m.view.Status(err.Error())
	}
	return true
}

// ActionNames lists the built-in action names with their help text.
func ActionNames() map[string]string {
	out := make(map[string]string, len(builtins))
	for name, b := range builtins {
		out[name] = b.help
	}
	return out
}

// KeyHelp describes every bound key in creation order, one line each.
func (m *Manager) KeyHelp() []string {
	var lines []string
	for _, keys := range m.keys.Keys() {
		kb, _ := m.keys.Lookup(keys)
		var descs []string
		for _, name := range kb.Names() {
			if b, ok := builtins[name]; ok {
				descs = append(descs, b.help)
			} else {
				descs = append(descs, name)
			}
		}
		lines = append(lines, fmt.Sprintf("%-8s %s", keys, strings.Join(dedupe(descs), "; ")))
	}
	return lines
}

func dedupe(in []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func (m *Manager) escape(_ []any) error {
	if !m.mode.Cancel() {
		m.view.Close()
	}
	return nil
}

func (m *Manager) deleteImage(_ []any) error {
	m.out.Record("delete", m.Path())
	m.view.Status("Marked for deletion: " + m.Path())
	return m.NextImage()
}

func (m *Manager) mark(args []any) error {
	n, err := intArg(args)
	if err != nil {
		return fmt.Errorf("mark: %w", err)
	}
	m.out.Record(fmt.Sprintf("mark%d", n), m.Path())
	m.view.Status(fmt.Sprintf("Mark %d: %s", n, m.Path()))
	return nil
}

func (m *Manager) adjust(args []any) error {
	n, err := intArg(args)
	if err != nil {
		return fmt.Errorf("adjust: %w", err)
	}
	m.view.Adjust(n)
	return nil
}

func (m *Manager) cycleScale(_ []any) error {
	m.view.Status("Zoom: " + m.view.CycleScale())
	return nil
}

func (m *Manager) writeTo(path string) keybind.Action {
	return func(...any) error {
		if err := actionlog.AppendLine(path, m.Path()); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		return nil
	}
}

func (m *Manager) runCommand(command string) {
	out, err := m.runner.Run(context.Background(), m.opts.CommandTimeout, command, m.Path())
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if line != "" {
			m.view.Status(line)
		}
	}
	if err != nil {
		m.log.Warn("command failed", "command", command, "error", err)
		m.view.Status("Command failed: " + err.Error())
	}
}

// intArg returns the last argument as an int. Bound arguments follow call
// arguments, so the last one is the value fixed at bind time.
func intArg(args []any) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("missing numeric argument")
	}
	switch v := args[len(args)-1].(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		return strconv.Atoi(v)
	}
	return 0, fmt.Errorf("argument %v is not a number", args[len(args)-1])
}

// DefaultKeyHelp describes the built-in key bindings without a window,
// for --help-keys.
func DefaultKeyHelp() []string {
	lines := make([]string, 0, len(defaultBinds)+1)
	for _, b := range defaultBinds {
		help := builtins[b.action].help
		if len(b.args) > 0 {
			help = fmt.Sprintf("%s (%v)", help, b.args[0])
		}
		lines = append(lines, fmt.Sprintf("%-8s %s", b.keys, help))
	}
	return append(lines, fmt.Sprintf("%-8s %s", "1-9", builtins["mark"].help))
}
