package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackForward(t *testing.T) {
	j := New[int](10)
	j.Jump(0, 7)
	j.Jump(7, 3)
	assert.Equal(t, 3, j.Len(), "shared position recorded once")

	pos, ok := j.Back()
	assert.True(t, ok)
	assert.Equal(t, 7, pos)
	pos, ok = j.Back()
	assert.True(t, ok)
	assert.Equal(t, 0, pos)
	_, ok = j.Back()
	assert.False(t, ok)

	pos, ok = j.Forward()
	assert.True(t, ok)
	assert.Equal(t, 7, pos)
}

func TestRecordAfterBackDropsFuture(t *testing.T) {
	j := New[int](10)
	j.Jump(0, 1)
	j.Record(2)
	j.Back()
	j.Back()

	j.Record(9)
	_, ok := j.Forward()
	assert.False(t, ok)
	pos, ok := j.Back()
	assert.True(t, ok)
	assert.Equal(t, 0, pos)
}

func TestCapacity(t *testing.T) {
	j := New[string](2)
	j.Record("a")
	j.Record("b")
	j.Record("c")
	assert.Equal(t, 2, j.Len())
	pos, _ := j.Back()
	assert.Equal(t, "b", pos)
	_, ok := j.Back()
	assert.False(t, ok)
}

func TestDisabledAndClear(t *testing.T) {
	j := New[int](-5)
	j.Jump(1, 2)
	assert.Equal(t, 0, j.Len())
	_, ok := j.Forward()
	assert.False(t, ok)

	j = New[int](DefaultCapacity)
	j.Jump(1, 2)
	j.Clear()
	assert.Equal(t, 0, j.Len())
	_, ok = j.Back()
	assert.False(t, ok)
}
