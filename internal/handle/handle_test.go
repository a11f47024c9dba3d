package handle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStartsAtOne(t *testing.T) {
	h := New()
	assert.Equal(t, 0, h.Last())
	assert.Equal(t, 1, h.Next())
	assert.Equal(t, 1, h.Last())
}

func TestNextIsMonotonic(t *testing.T) {
	var h Handles
	prev := h.Next()
	for i := 0; i < 100; i++ {
		next := h.Next()
		assert.Equal(t, prev+1, next)
		prev = next
	}
}

func TestProvidersAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.Next()
	a.Next()
	assert.Equal(t, 1, b.Next())
	assert.Equal(t, 3, a.Next())
}
