package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"imgmanage/internal/mode"
)

// inputEntry is an Entry that hands Escape and custom shortcuts back to
// the window instead of swallowing them.
type inputEntry struct {
	widget.Entry
	onEscape   func()
	onShortcut func(fyne.Shortcut)
}

func newInputEntry() *inputEntry {
	e := &inputEntry{}
	e.ExtendBaseWidget(e)
	return e
}

// TypedKey implements fyne.Focusable.
func (e *inputEntry) TypedKey(ev *fyne.KeyEvent) {
	if ev.Name == fyne.KeyEscape && e.onEscape != nil {
		e.onEscape()
		return
	}
	e.Entry.TypedKey(ev)
}

// TypedShortcut implements fyne.Shortcutable.
func (e *inputEntry) TypedShortcut(s fyne.Shortcut) {
	if _, ok := s.(*desktop.CustomShortcut); ok && e.onShortcut != nil {
		e.onShortcut(s)
		return
	}
	e.Entry.TypedShortcut(s)
}

// InputBox is the prompt and text entry shown while a mode collects
// text. It is hidden otherwise.
type InputBox struct {
	canvas fyne.Canvas
	prompt *widget.Label
	entry  *inputEntry
	box    *fyne.Container
}

var _ mode.Input = (*InputBox)(nil)

// NewInputBox creates a hidden input box on c.
func NewInputBox(c fyne.Canvas) *InputBox {
	in := &InputBox{
		canvas: c,
		prompt: widget.NewLabel(""),
		entry:  newInputEntry(),
	}
	in.prompt.TextStyle.Bold = true
	in.box = container.NewBorder(nil, nil, in.prompt, nil, in.entry)
	in.box.Hide()
	return in
}

// Container returns the widget tree to place in the window.
func (in *InputBox) Container() fyne.CanvasObject { return in.box }

// Prompt returns the prompt label text.
func (in *InputBox) Prompt() string { return in.prompt.Text }

// OnSubmit sets the function called when the user presses Enter.
func (in *InputBox) OnSubmit(fn func()) {
	in.entry.OnSubmitted = func(string) { fn() }
}

// Focused reports whether the entry has keyboard focus.
func (in *InputBox) Focused() bool {
	focused := in.canvas.Focused()
	return focused != nil && focused == fyne.Focusable(in.entry)
}

// Visible reports whether the box is shown.
func (in *InputBox) Visible() bool { return in.box.Visible() }

// Show displays the box with prompt and focuses the entry.
func (in *InputBox) Show(prompt string) {
	in.prompt.SetText(prompt)
	in.box.Show()
	in.canvas.Focus(in.entry)
}

// Hide removes focus and hides the box.
func (in *InputBox) Hide() {
	if in.Focused() {
		in.canvas.Unfocus()
	}
	in.box.Hide()
}

func (in *InputBox) Text() string { return in.entry.Text }

func (in *InputBox) SetText(s string) { in.entry.SetText(s) }
