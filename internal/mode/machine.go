package mode

import "imgmanage/internal/logging"

// Input is the text box the machine gates. The window supplies the real
// widget; tests supply a fake.
type Input interface {
	Focused() bool
	Visible() bool
	Show(prompt string)
	Hide()
	Text() string
	SetText(string)
}

// Machine holds the active mode and keeps the input box in step with it:
// visible and focused while a mode is pending, hidden otherwise.
type Machine struct {
	current Mode
	input   Input
	log     *logging.Logger
}

// NewMachine creates a machine in None.
func NewMachine(input Input, log *logging.Logger) *Machine {
	if log == nil {
		log = logging.Nop()
	}
	return &Machine{current: None, input: input, log: log}
}

// Current returns the active mode.
func (m *Machine) Current() Mode { return m.current }

// Input returns the gated text box.
func (m *Machine) Input() Input { return m.input }

// InputFocused reports whether the text box holds keyboard focus.
func (m *Machine) InputFocused() bool { return m.input.Focused() }

// Enter switches to target and shows the input box. It does nothing and
// returns false while the box already has focus, so a mode cannot be
// switched out from under the user mid-typing.
func (m *Machine) Enter(target Mode) bool {
	if m.input.Focused() {
		m.log.Debug("input has focus; not entering mode", "mode", target.String(), "current", m.current.String())
		return false
	}
	if target == None || !target.Valid() {
		m.log.Warn("refusing to enter mode", "mode", target.String())
		return false
	}
	m.log.Debug("enter mode", "from", m.current.String(), "to", target.String())
	m.current = target
	m.input.Show(target.Prompt())
	return true
}

// Cancel resets to None and hides the input. It reports whether there was
// pending input to cancel; false means the caller may treat the key as
// "quit" instead.
func (m *Machine) Cancel() bool {
	m.current = None
	if m.input.Focused() || m.input.Visible() {
		m.input.SetText("")
		m.input.Hide()
		return true
	}
	return false
}

// Submit captures the current mode, resets to None, reads and clears the
// input text, hides the box and returns the captured mode with the text.
func (m *Machine) Submit() (Mode, string) {
	captured := m.current
	m.current = None
	text := m.input.Text()
	m.input.SetText("")
	m.input.Hide()
	m.log.Debug("submit", "mode", captured.String(), "text", text)
	return captured, text
}
