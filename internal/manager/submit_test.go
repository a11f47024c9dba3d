package manager

import (
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgmanage/internal/actionlog"
	"imgmanage/internal/mode"
)

func (r rig) submit(t *testing.T, keys, text string) error {
	t.Helper()
	require.True(t, r.m.Trigger(keys), keys)
	r.input.typeText(text)
	return r.m.Submit()
}

func TestSubmitResetsModeFirst(t *testing.T) {
	r := newRig(t, numbered(t, 3), DefaultOptions())
	require.Error(t, r.submit(t, ":", "99"))
	assert.Equal(t, mode.None, r.m.Mode().Current())
	assert.False(t, r.input.visible)
	assert.Empty(t, r.input.text)
}

func TestSubmitWithoutModeOnlyWarns(t *testing.T) {
	r := newRig(t, numbered(t, 3), DefaultOptions())
	r.input.typeText("stray")
	assert.NoError(t, r.m.Submit())
	assert.Equal(t, 0, r.m.Output().Len())
}

func TestRename(t *testing.T) {
	imgs := numbered(t, 2)
	r := newRig(t, imgs, DefaultOptions())
	dir := filepath.Dir(imgs[0])

	require.NoError(t, r.submit(t, "Shift+r", "new.png"))
	require.NoError(t, r.submit(t, "Shift+r", "/elsewhere/other.png"))
	require.NoError(t, r.submit(t, "Shift+r", "   "))

	assert.Equal(t, []actionlog.Entry{
		{Action: "rename:" + filepath.Join(dir, "new.png"), Target: imgs[0]},
		{Action: "rename:/elsewhere/other.png", Target: imgs[0]},
	}, r.m.Output().Entries())
}

func TestGoTo(t *testing.T) {
	imgs := numbered(t, 5)
	r := newRig(t, imgs, DefaultOptions())

	tests := []struct {
		text string
		want int
	}{
		{"3", 2},
		{"1", 0},
		{"5", 4},
		{"-1", 4},
		{"-5", 0},
		{"img04.png", 3},
		{imgs[1], 1},
	}
	for _, tt := range tests {
		require.NoError(t, r.submit(t, ":", tt.text), tt.text)
		assert.Equal(t, tt.want, r.m.Index(), tt.text)
	}
}

func TestGoToErrorsKeepIndex(t *testing.T) {
	r := newRig(t, numbered(t, 5), DefaultOptions())
	require.NoError(t, r.m.GoToIndex(2))

	for _, bad := range []string{"0", "6", "-6"} {
		err := r.submit(t, "Shift+g", bad)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, bad)
		assert.Equal(t, 2, r.m.Index())
	}
	err := r.submit(t, "Shift+g", "nothing-like-this.png")
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Equal(t, 2, r.m.Index())
	assert.NotEmpty(t, r.view.status)
}

func TestFindSearchesForwardWithWrap(t *testing.T) {
	imgs := pngFiles(t, "cat1.png", "dog1.png", "cat2.png", "dog2.png")
	r := newRig(t, imgs, DefaultOptions())

	require.NoError(t, r.submit(t, "Shift+f", "cat*"))
	assert.Equal(t, 2, r.m.Index(), "skips the current image")
	require.NoError(t, r.submit(t, "Shift+f", "cat*"))
	assert.Equal(t, 0, r.m.Index(), "wraps around")
	require.NoError(t, r.submit(t, "Shift+f", "dog2"))
	assert.Equal(t, 3, r.m.Index(), "plain text is a substring match")
}

func TestFindFuzzyFallback(t *testing.T) {
	imgs := pngFiles(t, "holiday-beach.png", "office-party.png")
	r := newRig(t, imgs, DefaultOptions())

	require.NoError(t, r.submit(t, "Shift+f", "ofcpty"))
	assert.Equal(t, 1, r.m.Index())

	err := r.submit(t, "Shift+f", "zzzz")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestJumpList(t *testing.T) {
	r := newRig(t, numbered(t, 10), DefaultOptions())
	require.NoError(t, r.submit(t, ":", "5"))
	require.NoError(t, r.submit(t, ":", "8"))

	r.m.Trigger("Ctrl+o")
	assert.Equal(t, 4, r.m.Index())
	r.m.Trigger("Ctrl+o")
	assert.Equal(t, 0, r.m.Index())
	r.m.Trigger("Ctrl+o")
	assert.Equal(t, 0, r.m.Index())
	r.m.Trigger("Ctrl+i")
	assert.Equal(t, 4, r.m.Index())
}

func TestLabel(t *testing.T) {
	imgs := numbered(t, 1)
	r := newRig(t, imgs, DefaultOptions())
	require.NoError(t, r.submit(t, "l", "sunset"))
	require.NoError(t, r.submit(t, "l", ""))
	assert.Equal(t, []actionlog.Entry{{Action: "label:sunset", Target: imgs[0]}}, r.m.Output().Entries())
}

func TestCommandMode(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	imgs := numbered(t, 1)
	r := newRig(t, imgs, DefaultOptions())

	require.NoError(t, r.submit(t, "/", `echo "got $1"`))
	assert.Contains(t, r.view.status, "got "+imgs[0])

	require.NoError(t, r.submit(t, "/", "exit 4"), "failures are reported, not returned")
	last := r.view.status[len(r.view.status)-1]
	assert.True(t, strings.HasPrefix(last, "Command failed"), last)
	assert.Equal(t, 0, r.m.Output().Len(), "commands never record actions")
}

func TestBindCommand(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	imgs := numbered(t, 1)
	r := newRig(t, imgs, DefaultOptions())
	r.m.BindCommand("Ctrl+e", `printf 'edit %s' "$(basename "$1")"`)
	assert.True(t, r.m.Trigger("Ctrl+e"))
	assert.Contains(t, r.view.status, "edit img01.png")
}
