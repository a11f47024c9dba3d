// Package ui is the Fyne front end: one window with the image view, the
// overlay text layer, a mode input box and a status bar. The window is a
// manager.View; all browsing state lives in the manager.
package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"imgmanage/internal/logging"
	"imgmanage/internal/manager"
	"imgmanage/internal/overlay"
	"imgmanage/internal/valuefmt"
)

// Options configure the window.
type Options struct {
	Title         string
	Size          fyne.Size
	Scale         ScaleMode
	TextSize      float32
	StatusHistory int
}

// ResolveSize turns width and height strings (pixels, "N%" or empty for
// the full screen) into a window size.
func ResolveSize(width, height string, screenW, screenH int) (fyne.Size, error) {
	w, err := valuefmt.InterpretAmount(width, 0, screenW)
	if err != nil {
		return fyne.Size{}, fmt.Errorf("width: %w", err)
	}
	h, err := valuefmt.InterpretAmount(height, 0, screenH)
	if err != nil {
		return fyne.Size{}, fmt.Errorf("height: %w", err)
	}
	return fyne.NewSize(float32(w), float32(h)), nil
}

// Window is the image manager window.
type Window struct {
	app fyne.App
	win fyne.Window
	log *logging.Logger

	view        *ZoomPanArea
	placeholder *canvas.Text
	text        *TextLayer
	helpLabel   *widget.Label
	help        *fyne.Container
	status      *StatusLog
	input       *InputBox
	about       *About

	mgr       *manager.Manager
	shortcuts map[string]string
	onClose   []func()
	closed    bool
}

var _ manager.View = (*Window)(nil)

// NewWindow builds the window on a, drawing overlay text from reg. The
// window does nothing useful until Attach is called.
func NewWindow(a fyne.App, reg *overlay.Registry, opts Options, log *logging.Logger) *Window {
	if log == nil {
		log = logging.Nop()
	}
	if opts.Title == "" {
		opts.Title = "imgmanage"
	}
	a.Settings().SetTheme(NewViewerTheme(a.Settings().Theme(), opts.TextSize))

	w := &Window{
		app:       a,
		win:       a.NewWindow(opts.Title),
		log:       log,
		shortcuts: make(map[string]string),
	}
	w.view = NewZoomPanArea(opts.Scale, nil)
	w.placeholder = canvas.NewText("", color.White)
	w.placeholder.Alignment = fyne.TextAlignCenter
	w.placeholder.Hide()
	w.text = NewTextLayer(reg)
	w.helpLabel = widget.NewLabel("")
	w.helpLabel.TextStyle.Monospace = true
	w.help = container.NewStack(
		canvas.NewRectangle(color.NRGBA{A: 200}),
		container.NewVScroll(container.NewPadded(w.helpLabel)),
	)
	w.help.Hide()
	w.status = NewStatusLog(opts.StatusHistory, log.Component("status"))
	w.input = NewInputBox(w.win.Canvas())
	w.about = NewAbout(w.win, "About imgmanage", AboutText)

	w.win.SetMainMenu(w.buildMenu())
	w.win.SetContent(container.NewBorder(
		nil,
		container.NewVBox(w.input.Container(), widget.NewSeparator(), w.status.Container()),
		nil, nil,
		container.NewStack(w.view, container.NewCenter(w.placeholder), w.text.Container(), w.help),
	))
	w.win.SetMaster()
	w.win.SetCloseIntercept(w.Close)
	if opts.Size.Width > 0 && opts.Size.Height > 0 {
		w.win.Resize(opts.Size)
	}
	w.win.CenterOnScreen()
	return w
}

func (w *Window) buildMenu() *fyne.MainMenu {
	exit := fyne.NewMenuItem("Exit", w.Close)
	exit.IsQuit = true
	return fyne.NewMainMenu(
		fyne.NewMenu("File", exit),
		fyne.NewMenu("Help",
			fyne.NewMenuItem("Keys", w.showShortcuts),
			fyne.NewMenuItem("About", w.about.Show),
		),
	)
}

// Input returns the mode input box, for manager.Deps.
func (w *Window) Input() *InputBox { return w.input }

// Canvas returns the window canvas.
func (w *Window) Canvas() fyne.Canvas { return w.win.Canvas() }

// StatusLog returns the status bar log.
func (w *Window) StatusLog() *StatusLog { return w.status }

// View returns the image view.
func (w *Window) View() *ZoomPanArea { return w.view }

// Attach connects the window to m: key events, the input box and the
// help overlay all go through the manager from now on.
func (w *Window) Attach(m *manager.Manager) {
	w.mgr = m
	w.input.entry.onEscape = func() { w.trigger("Escape") }
	w.input.entry.onShortcut = w.typedShortcut
	w.input.OnSubmit(func() {
		// Submit reports its own errors to the status bar.
		_ = m.Submit()
	})
	w.bindKeys()
}

// OnClose adds fn to the functions run once when the window closes.
func (w *Window) OnClose(fn func()) {
	w.onClose = append(w.onClose, fn)
}

// ShowAndRun shows the window and runs the application loop.
func (w *Window) ShowAndRun() {
	w.win.ShowAndRun()
}

// SetImage implements manager.View.
func (w *Window) SetImage(img image.Image, title string) {
	w.placeholder.Hide()
	w.view.SetImage(img)
	w.win.SetTitle(title)
}

// ClearImage implements manager.View.
func (w *Window) ClearImage(msg, title string) {
	w.view.SetImage(nil)
	w.placeholder.Text = msg
	w.placeholder.Show()
	w.placeholder.Refresh()
	w.win.SetTitle(title)
}

// Placeholder returns the message shown in place of an image, or "".
func (w *Window) Placeholder() string {
	if !w.placeholder.Visible() {
		return ""
	}
	return w.placeholder.Text
}

// Status implements manager.View.
func (w *Window) Status(msg string) { w.status.Add(msg) }

// ToggleHelp implements manager.View.
func (w *Window) ToggleHelp() {
	if w.help.Visible() {
		w.help.Hide()
		return
	}
	if w.mgr != nil {
		w.helpLabel.SetText(strings.Join(w.mgr.KeyHelp(), "\n"))
	}
	w.help.Show()
}

// HelpShown reports whether the key help overlay is visible.
func (w *Window) HelpShown() bool { return w.help.Visible() }

// CycleScale implements manager.View.
func (w *Window) CycleScale() string {
	next := w.view.Scale().Next()
	w.view.SetScale(next)
	return next.String()
}

// Zoom implements manager.View.
func (w *Window) Zoom(percent int) { w.view.Zoom(percent) }

// Adjust implements manager.View.
func (w *Window) Adjust(percent int) { w.view.Adjust(percent) }

// Close runs the close hooks once and closes the window.
func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	for _, fn := range w.onClose {
		fn()
	}
	w.win.Close()
}

// Closed reports whether Close has run.
func (w *Window) Closed() bool { return w.closed }
