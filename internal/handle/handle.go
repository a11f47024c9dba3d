// Package handle issues unique integer handles for overlay objects.
package handle

// Handles builds process-unique IDs. The zero value is ready to use and
// its first Next call returns 1. Handles are never reused.
type Handles struct {
	id int
}

// New creates a new handle provider.
func New() *Handles {
	return &Handles{}
}

// Next advances to and returns the next handle.
func (h *Handles) Next() int {
	h.id++
	return h.id
}

// Last returns the most recently issued handle, or 0 if none was issued.
func (h *Handles) Last() int {
	return h.id
}
