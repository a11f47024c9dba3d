package keybind

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCreatesThenAppends(t *testing.T) {
	tbl := NewTable(nil)
	var calls []string

	created := tbl.Register("Ctrl+q", "first", func(...any) error {
		calls = append(calls, "first")
		return nil
	})
	assert.True(t, created)

	created = tbl.Register("control+q", "second", func(...any) error {
		calls = append(calls, "second")
		return nil
	})
	assert.False(t, created, "second bind to the same combo must append")
	assert.Equal(t, 1, tbl.Len())

	require.NoError(t, tbl.Trigger("Ctrl+q"))
	assert.Equal(t, []string{"first", "second"}, calls)

	kb, ok := tbl.Lookup("CTRL+q")
	require.True(t, ok)
	assert.Equal(t, []string{"first", "second"}, kb.Names())
	assert.Equal(t, "Ctrl+q", kb.Keys())
}

func TestBoundArgumentsFollowCallArguments(t *testing.T) {
	tbl := NewTable(nil)
	var got [][]any
	mark := func(args ...any) error {
		got = append(got, args)
		return nil
	}
	for n := 1; n <= 9; n++ {
		tbl.Register(string(rune('0'+n)), "mark", mark, n)
	}
	tbl.Register("3", "mark-extra", mark, "x", "y")

	require.NoError(t, tbl.Trigger("3", "call"))
	assert.Equal(t, [][]any{{"call", 3}, {"call", "x", "y"}}, got)

	got = nil
	require.NoError(t, tbl.Trigger("9"))
	assert.Equal(t, [][]any{{9}}, got)
}

func TestTriggerIsolatesFailures(t *testing.T) {
	tbl := NewTable(nil)
	var ran []string
	tbl.Register("x", "fails", func(...any) error {
		ran = append(ran, "fails")
		return errors.New("nope")
	})
	tbl.Register("x", "panics", func(...any) error {
		ran = append(ran, "panics")
		panic("kaboom")
	})
	tbl.Register("x", "works", func(...any) error {
		ran = append(ran, "works")
		return nil
	})

	err := tbl.Trigger("x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
	assert.Contains(t, err.Error(), "kaboom")
	assert.Equal(t, []string{"fails", "panics", "works"}, ran)
}

func TestTriggerUnbound(t *testing.T) {
	tbl := NewTable(nil)
	err := tbl.Trigger("F12")
	assert.ErrorIs(t, err, ErrUnbound)
}

func TestKeysInCreationOrder(t *testing.T) {
	tbl := NewTable(nil)
	var created []string
	tbl.OnCreate(func(keys string) { created = append(created, keys) })
	noop := func(...any) error { return nil }
	tbl.Register("Escape", "esc", noop)
	tbl.Register("Left", "prev", noop)
	tbl.Register("Escape", "esc2", noop)
	tbl.Register(":", "goto", noop)

	assert.Equal(t, []string{"Escape", "Left", ":"}, tbl.Keys())
	assert.Equal(t, tbl.Keys(), created)
}

func TestBlockedBy(t *testing.T) {
	focused := true
	calls := 0
	act := BlockedBy(func() bool { return focused }, nil, "next", func(...any) error {
		calls++
		return nil
	})
	require.NoError(t, act())
	assert.Equal(t, 0, calls)

	focused = false
	require.NoError(t, act())
	assert.Equal(t, 1, calls)
}
