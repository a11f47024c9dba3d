// Package history keeps the jump list: the image positions visited by
// explicit jumps, walked back and forward like a browser history.
package history

// DefaultCapacity bounds the jump list when no size is configured.
const DefaultCapacity = 100

// JumpList is a bounded back/forward stack of positions.
type JumpList[T comparable] struct {
	stack    []T
	current  int
	capacity int
}

// New creates a jump list. A zero capacity disables it; negative is
// treated as zero.
func New[T comparable](capacity int) *JumpList[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &JumpList[T]{
		stack:    make([]T, 0, capacity),
		current:  -1,
		capacity: capacity,
	}
}

// Record pushes pos as the newest position. Positions after the cursor
// (left behind by Back) are discarded first. Recording the position the
// cursor already sits on is a no-op.
func (j *JumpList[T]) Record(pos T) {
	if j.capacity == 0 {
		return
	}
	if j.current != -1 && j.current < len(j.stack)-1 {
		j.stack = j.stack[:j.current+1]
	}
	if j.current >= 0 && j.stack[j.current] == pos {
		return
	}
	j.stack = append(j.stack, pos)
	if len(j.stack) > j.capacity {
		j.stack = j.stack[len(j.stack)-j.capacity:]
	}
	j.current = len(j.stack) - 1
}

// Jump records a move from one position to another.
func (j *JumpList[T]) Jump(from, to T) {
	j.Record(from)
	j.Record(to)
}

// Back moves the cursor to the previous position.
func (j *JumpList[T]) Back() (pos T, ok bool) {
	if j.current <= 0 {
		return pos, false
	}
	j.current--
	return j.stack[j.current], true
}

// Forward moves the cursor to the next position.
func (j *JumpList[T]) Forward() (pos T, ok bool) {
	if j.current == -1 || j.current >= len(j.stack)-1 {
		return pos, false
	}
	j.current++
	return j.stack[j.current], true
}

// Len returns the number of stored positions.
func (j *JumpList[T]) Len() int { return len(j.stack) }

// Clear empties the list.
func (j *JumpList[T]) Clear() {
	j.stack = j.stack[:0]
	j.current = -1
}
