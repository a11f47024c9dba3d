// Package overlay keeps the text objects drawn over the current image.
// Each object is addressed by a handle that is never reused, so callers
// can update or remove exactly what they added.
package overlay

import (
	"slices"

	"imgmanage/internal/handle"
	"imgmanage/internal/logging"
)

// Point is a position relative to the top-left of the image area.
type Point struct {
	X, Y float32
}

// Text is one overlay text object.
type Text struct {
	Handle int
	Pos    Point
	Text   string
	Style  Style
}

// Registry stores overlay text objects by handle.
type Registry struct {
	handles  *handle.Handles
	objects  map[int]Text
	style    Style
	onChange func()
	log      *logging.Logger
}

// NewRegistry creates an empty registry using the default style.
func NewRegistry(log *logging.Logger) *Registry {
	if log == nil {
		log = logging.Nop()
	}
	return &Registry{
		handles: handle.New(),
		objects: make(map[int]Text),
		style:   DefaultStyle(),
		log:     log,
	}
}

// OnChange sets the callback run after any add, update or removal.
func (r *Registry) OnChange(fn func()) { r.onChange = fn }

func (r *Registry) changed() {
	if r.onChange != nil {
		r.onChange()
	}
}

// Style returns the style applied to subsequently added text.
func (r *Registry) Style() Style { return r.style }

// SetStyle changes how subsequently added text is drawn.
func (r *Registry) SetStyle(s Style) { r.style = s }

// Add draws text at pos with the current style and returns its handle.
func (r *Registry) Add(pos Point, text string) int {
	h := r.handles.Next()
	r.objects[h] = Text{Handle: h, Pos: pos, Text: text, Style: r.style}
	r.log.Trace("add text", "handle", h, "text", text)
	r.changed()
	return h
}

// Update replaces the text of an existing object.
func (r *Registry) Update(h int, text string) bool {
	obj, ok := r.objects[h]
	if !ok {
		r.log.Warn("update failed; not a valid handle", "handle", h)
		return false
	}
	obj.Text = text
	r.objects[h] = obj
	r.changed()
	return true
}

// Has reports whether h is still being drawn.
func (r *Registry) Has(h int) bool {
	_, ok := r.objects[h]
	return ok
}

// Get returns the object for h.
func (r *Registry) Get(h int) (Text, bool) {
	obj, ok := r.objects[h]
	if !ok {
		r.log.Warn("get failed; not a valid handle", "handle", h)
	}
	return obj, ok
}

// Handles returns the live handles in ascending order.
func (r *Registry) Handles() []int {
	hs := make([]int, 0, len(r.objects))
	for h := range r.objects {
		hs = append(hs, h)
	}
	slices.Sort(hs)
	return hs
}

// Objects returns the live objects in handle order.
func (r *Registry) Objects() []Text {
	out := make([]Text, 0, len(r.objects))
	for _, h := range r.Handles() {
		out = append(out, r.objects[h])
	}
	return out
}

// Clear removes the given handles, or everything when none are given.
// Unknown handles are logged and ignored.
func (r *Registry) Clear(handles ...int) {
	if len(handles) == 0 {
		handles = r.Handles()
	}
	for _, h := range handles {
		if _, ok := r.objects[h]; !ok {
			r.log.Warn("text object does not exist; ignoring", "handle", h)
			continue
		}
		delete(r.objects, h)
	}
	r.changed()
}
