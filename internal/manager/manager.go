// Package manager holds the image browsing state: the image list, the
// current index, the input mode and the key table. The window forwards
// key presses and submitted text here and renders what it is told to.
package manager

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"time"

	"imgmanage/internal/actionlog"
	"imgmanage/internal/history"
	"imgmanage/internal/keybind"
	"imgmanage/internal/logging"
	"imgmanage/internal/media"
	"imgmanage/internal/mode"
	"imgmanage/internal/overlay"
	"imgmanage/internal/procexec"
)

// Navigation errors. They are reported to the user, never fatal.
var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrNoMatch         = errors.New("no matching image")
	ErrNoImages        = errors.New("no images specified")
)

// View is the window side of the manager.
type View interface {
	// SetImage displays a decoded image; title describes it.
	SetImage(img image.Image, title string)
	// ClearImage shows msg in place of an image that cannot be drawn.
	ClearImage(msg, title string)
	// Status shows a short message to the user.
	Status(msg string)
	ToggleHelp()
	CycleScale() string
	// Zoom scales by percent (negative shrinks).
	Zoom(percent int)
	// Adjust fine-tunes the current scale by percent.
	Adjust(percent int)
	Close()
}

// Options tune the manager.
type Options struct {
	AdvanceMany    int
	CommandTimeout time.Duration
	ZoomStep       int
	History        int
	AddText        bool
	AddTextFrom    string
	Write1, Write2 string
}

// DefaultOptions match the command-line defaults.
func DefaultOptions() Options {
	return Options{
		AdvanceMany:    10,
		CommandTimeout: 30 * time.Second,
		ZoomStep:       10,
		History:        history.DefaultCapacity,
	}
}

// Manager is the controller behind the image window.
type Manager struct {
	images []string
	index  int

	opts    Options
	view    View
	mode    *mode.Machine
	keys    *keybind.Table
	out     *actionlog.Log
	jumps   *history.JumpList[int]
	media   *media.Service
	overlay *overlay.Registry
	runner  *procexec.Runner
	log     *logging.Logger

	textOn      bool
	textHandles []int
}

// Deps are the collaborators a Manager needs. Nil fields get defaults,
// except View and Input, which are required.
type Deps struct {
	View    View
	Input   mode.Input
	Out     *actionlog.Log
	Media   *media.Service
	Overlay *overlay.Registry
	Runner  *procexec.Runner
	Log     *logging.Logger
}

// New creates a manager over images and registers the built-in key
// bindings. The image list must not be empty.
func New(images []string, opts Options, deps Deps) (*Manager, error) {
	if len(images) == 0 {
		return nil, ErrNoImages
	}
	if deps.View == nil || deps.Input == nil {
		return nil, fmt.Errorf("manager needs a view and an input box")
	}
	log := deps.Log
	if log == nil {
		log = logging.Nop()
	}
	if opts.AdvanceMany < 1 {
		opts.AdvanceMany = DefaultOptions().AdvanceMany
	}
	if opts.ZoomStep < 1 {
		opts.ZoomStep = DefaultOptions().ZoomStep
	}
	m := &Manager{
		images:  append([]string(nil), images...),
		opts:    opts,
		view:    deps.View,
		mode:    mode.NewMachine(deps.Input, log.Component("mode")),
		keys:    keybind.NewTable(log.Component("keybind")),
		out:     deps.Out,
		jumps:   history.New[int](opts.History),
		media:   deps.Media,
		overlay: deps.Overlay,
		runner:  deps.Runner,
		log:     log,
		textOn:  opts.AddText || opts.AddTextFrom != "",
	}
	if m.out == nil {
		m.out = actionlog.New(log.Component("actionlog"))
	}
	if m.media == nil {
		m.media = media.NewService(nil, log.Component("media"))
	}
	if m.overlay == nil {
		m.overlay = overlay.NewRegistry(log.Component("overlay"))
	}
	if m.runner == nil {
		m.runner = procexec.NewRunner(log.Component("procexec"))
	}
	m.registerDefaults()
	return m, nil
}

// Keys exposes the key table so the window can attach shortcuts and
// extra bindings can be added.
func (m *Manager) Keys() *keybind.Table { return m.keys }

// Mode exposes the input mode machine.
func (m *Manager) Mode() *mode.Machine { return m.mode }

// Output returns the action log.
func (m *Manager) Output() *actionlog.Log { return m.out }

// Overlay returns the overlay text registry.
func (m *Manager) Overlay() *overlay.Registry { return m.overlay }

// Start displays the first image. An error here is fatal to startup.
func (m *Manager) Start() error {
	return m.SetIndex(0)
}

// Index returns the current index.
func (m *Manager) Index() int { return m.index }

// Count returns the number of images.
func (m *Manager) Count() int { return len(m.images) }

// Path returns the current image path.
func (m *Manager) Path() string { return m.images[m.index] }

// Images returns a copy of the image list.
func (m *Manager) Images() []string { return append([]string(nil), m.images...) }

// SetIndex changes the current index and redraws.
func (m *Manager) SetIndex(idx int) error {
	if idx < 0 || idx >= len(m.images) {
		return fmt.Errorf("%w: %d outside [0, %d)", ErrIndexOutOfRange, idx, len(m.images))
	}
	m.log.Debug("index", "from", m.index, "to", idx)
	m.index = idx
	return m.redraw()
}

// Advance moves by n images, wrapping around either end.
func (m *Manager) Advance(n int) error {
	count := len(m.images)
	next := ((m.index+n)%count + count) % count
	return m.SetIndex(next)
}

// NextImage advances one image.
func (m *Manager) NextImage() error { return m.Advance(1) }

// PrevImage goes back one image.
func (m *Manager) PrevImage() error { return m.Advance(-1) }

// NextMany advances by the configured bulk amount.
func (m *Manager) NextMany() error { return m.Advance(m.opts.AdvanceMany) }

// PrevMany goes back by the configured bulk amount.
func (m *Manager) PrevMany() error { return m.Advance(-m.opts.AdvanceMany) }

// GoToIndex jumps to idx and records the jump.
func (m *Manager) GoToIndex(idx int) error {
	from := m.index
	if err := m.SetIndex(idx); err != nil {
		return err
	}
	m.jumps.Jump(from, idx)
	return nil
}

// GoToName jumps to the first image whose base name is name.
func (m *Manager) GoToName(name string) error {
	for i, p := range m.images {
		if filepath.Base(p) == name {
			return m.GoToIndex(i)
		}
	}
	return fmt.Errorf("%w: %q", ErrNoMatch, name)
}

// JumpBack returns to the position before the last jump.
func (m *Manager) JumpBack() error {
	idx, ok := m.jumps.Back()
	if !ok {
		m.view.Status("Already at the oldest jump")
		return nil
	}
	return m.SetIndex(idx)
}

// JumpForward re-does a jump undone by JumpBack.
func (m *Manager) JumpForward() error {
	idx, ok := m.jumps.Forward()
	if !ok {
		m.view.Status("Already at the newest jump")
		return nil
	}
	return m.SetIndex(idx)
}

func (m *Manager) title() string {
	return fmt.Sprintf("imgmanage - [%d/%d] %s", m.index+1, len(m.images), m.Path())
}

// redraw loads the current image and hands it to the view. Unknown media
// is an error; other non-image media is shown as a placeholder.
func (m *Manager) redraw() error {
	path := m.Path()
	info, err := m.media.Stat(path)
	if err != nil {
		m.view.ClearImage(fmt.Sprintf("Cannot show %s: %v", path, err), m.title())
		m.view.Status(err.Error())
		return err
	}

	switch info.Type.Kind {
	case media.KindImage:
		img, err := m.media.Load(path)
		if err != nil {
			m.view.ClearImage(err.Error(), m.title())
			m.view.Status(err.Error())
			return err
		}
		m.view.SetImage(img, m.title())
	default:
		m.log.Warn("unhandled media type", "mime", info.Type.Mime, "path", path)
		m.view.ClearImage(fmt.Sprintf("No preview for %s (%s)", filepath.Base(path), info.Type.Mime), m.title())
	}
	m.refreshText()
	return nil
}
