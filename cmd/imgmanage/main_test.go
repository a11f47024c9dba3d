package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgmanage/internal/config"
	"imgmanage/internal/manager"
	"imgmanage/internal/metacache"
	"imgmanage/internal/overlay"
	"imgmanage/internal/ui"
)

// executeCommandC executes a root command with a recording launcher and
// captures its output.
func executeCommandC(t *testing.T, args ...string) (*session, string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var got *session
	root := NewRootCmd(func(s *session) error {
		got = s
		return nil
	})
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := execute(root, args)
	return got, stdout.String(), stderr.String(), err
}

func imageDir(t *testing.T, sizes map[string]int) string {
	t.Helper()
	dir := t.TempDir()
	for name, side := range sizes {
		var buf bytes.Buffer
		require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, side, side))))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0o644))
	}
	return dir
}

func TestHelpFlagsExitCleanly(t *testing.T) {
	s, stdout, _, err := executeCommandC(t, "--help-sort")
	require.NoError(t, err)
	assert.Nil(t, s, "help never launches the window")
	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "rsize")
	assert.NotContains(t, stdout, "Keys:")

	_, stdout, _, err = executeCommandC(t, "--help-all")
	require.NoError(t, err)
	for _, want := range []string{"--add-text-from PROG", "{action}", "rtime", "Keys:", "Next image", "next-image", "bindings:"} {
		assert.Contains(t, stdout, want)
	}
}

func TestNoImages(t *testing.T) {
	_, _, _, err := executeCommandC(t, t.TempDir())
	assert.ErrorIs(t, err, manager.ErrNoImages)
}

func TestSessionFromFlags(t *testing.T) {
	dir := imageDir(t, map[string]int{"a.png": 4, "b.png": 8})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	s, _, _, err := executeCommandC(t,
		"-s", "rname",
		"--width", "50%", "--height", "600", "--screen", "1000x800",
		"--scale", "exact",
		"--text-color", "#ff0000",
		"--font-size", "14",
		"--advance-many", "3",
		"-t",
		dir,
	)
	require.NoError(t, err)
	require.NotNil(t, s)

	assert.Equal(t, []string{filepath.Join(dir, "b.png"), filepath.Join(dir, "a.png")}, s.images)
	assert.Equal(t, fyne.NewSize(500, 600), s.window.Size)
	assert.Equal(t, ui.ScaleExact, s.window.Scale)
	assert.Equal(t, uint8(255), s.style.Color.R)
	assert.Equal(t, float32(14), s.style.Font.Size)
	assert.Equal(t, 3, s.opts.AdvanceMany)
	assert.Equal(t, 30*time.Second, s.opts.CommandTimeout)
	assert.Equal(t, "trace", s.cfg.Level)
}

func TestSortBySize(t *testing.T) {
	dir := imageDir(t, map[string]int{"big.png": 256, "small.png": 2})
	cacheDir := t.TempDir()
	s, _, _, err := executeCommandC(t, "-s", "size", "--cache", cacheDir, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "small.png"), filepath.Join(dir, "big.png")}, s.images)

	c, err := metacache.Open(cacheDir, nil)
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, 2, c.Len(), "size sorting goes through the metadata cache")
}

func TestSortFlagsAreExclusive(t *testing.T) {
	dir := imageDir(t, map[string]int{"a.png": 2})
	_, _, _, err := executeCommandC(t, "-s", "name", "-S", "sort", dir)
	assert.Error(t, err)
}

func TestConfigurationErrors(t *testing.T) {
	dir := imageDir(t, map[string]int{"a.png": 2})
	tests := map[string][]string{
		"color":  {"--text-color", "not-a-color", dir},
		"width":  {"--width", "wide", dir},
		"screen": {"--screen", "big", dir},
		"sort":   {"-s", "shuffle", dir},
		"format": {"-f", "{} {} {}", dir},
		"scale":  {"--scale", "huge", dir},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			s, _, _, err := executeCommandC(t, args...)
			assert.Error(t, err)
			assert.Nil(t, s)
		})
	}
}

func TestMissingInputs(t *testing.T) {
	dir := imageDir(t, map[string]int{"a.png": 2})
	missing := filepath.Join(dir, "gone.png")

	_, _, _, err := executeCommandC(t, filepath.Join(dir, "a.png"), missing)
	assert.ErrorIs(t, err, os.ErrNotExist)

	s, _, _, err := executeCommandC(t, "--ignore-errors", filepath.Join(dir, "a.png"), missing)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.png")}, s.images)
}

func TestPairFlags(t *testing.T) {
	dir := imageDir(t, map[string]int{"a.png": 2})
	s, _, _, err := executeCommandC(t,
		"--bind", "Ctrl+e", "echo $1",
		"--bind", "x", "true",
		"--logger", "gather", "debug",
		dir,
	)
	require.NoError(t, err)
	assert.Equal(t, []config.Pair{{First: "Ctrl+e", Second: "echo $1"}, {First: "x", Second: "true"}}, s.cfg.Binds)
	assert.Equal(t, []config.Pair{{First: "gather", Second: "debug"}}, s.cfg.Loggers)

	_, _, _, err = executeCommandC(t, "--logger", "gather", "loud", dir)
	assert.Error(t, err)
}

func TestConfigFileAndEnv(t *testing.T) {
	dir := imageDir(t, map[string]int{"a.png": 2})
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("zoom-step: 25\nadvance-many: 4\n"), 0o644))
	t.Setenv("IMGMANAGE_ADVANCE_MANY", "7")

	s, _, _, err := executeCommandC(t, "--config", cfgFile, dir)
	require.NoError(t, err)
	assert.Equal(t, 25, s.opts.ZoomStep)
	assert.Equal(t, 7, s.opts.AdvanceMany, "environment beats the config file")
	assert.Equal(t, cfgFile, s.cfg.File)

	_, _, _, err = executeCommandC(t, "--config", filepath.Join(dir, "absent.yaml"), dir)
	assert.Error(t, err)
}

func TestKeymapFlag(t *testing.T) {
	dir := imageDir(t, map[string]int{"a.png": 2})
	km := filepath.Join(t.TempDir(), "keys.yaml")
	require.NoError(t, os.WriteFile(km, []byte("bindings:\n  - key: n\n    action: next-image\n"), 0o644))

	s, _, _, err := executeCommandC(t, "--keymap", km, dir)
	require.NoError(t, err)
	require.Len(t, s.keymaps, 1)
	assert.Equal(t, "next-image", s.keymaps[0].Bindings[0].Action)
}

type fakeBinder struct {
	actions  []string
	commands []string
}

func (f *fakeBinder) BindAction(keys, name string, args ...any) error {
	if name == "bogus" {
		return assert.AnError
	}
	f.actions = append(f.actions, keys+"="+name)
	return nil
}

func (f *fakeBinder) BindCommand(keys, command string) {
	f.commands = append(f.commands, keys+"="+command)
}

func TestApplyBindings(t *testing.T) {
	b := &fakeBinder{}
	km := &config.Keymap{Bindings: []config.Binding{
		{Key: "n", Action: "next-image"},
		{Key: "x", Command: "echo"},
		{Key: "q", Action: "bogus"},
	}}
	err := applyBindings(b, []config.Pair{{First: "Ctrl+e", Second: "true"}}, []*config.Keymap{km})

	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, []string{"n=next-image"}, b.actions)
	assert.Equal(t, []string{"Ctrl+e=true", "x=echo"}, b.commands)
}

func TestTextStyleFont(t *testing.T) {
	cfg := &config.Config{FontFamily: "DejaVu Sans Mono", FontSize: 12, TextColor: "yellow"}
	st, err := textStyle(cfg)
	require.NoError(t, err)
	assert.Equal(t, "DejaVu Sans Mono", st.Font.Family)
	assert.True(t, st.Font.Monospace)
	assert.Equal(t, float32(12), st.Font.Size)

	cfg.TextColor = "nope"
	_, err = textStyle(cfg)
	assert.ErrorIs(t, err, overlay.ErrInvalidColor)
}
