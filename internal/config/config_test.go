package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String(KeyWidth, "100%", "")
	fs.Int(KeyFontSize, 10, "")
	fs.String(KeyFormat, `{} {}\n`, "")
	fs.StringArrayP(KeyFile, "F", nil, "")
	fs.StringArray(KeyKeymap, nil, "")
	fs.Var(NewPairValue("KEY CMD"), "bind", "")
	fs.Var(NewPairValue("NAME LEVEL"), "logger", "")
	return fs
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	c, err := Load(viper.New(), nil, "")
	require.NoError(t, err)
	assert.Equal(t, "100%", c.Width)
	assert.Equal(t, 10, c.FontSize)
	assert.Equal(t, "name", c.Sort)
	assert.Equal(t, 10, c.AdvanceMany)
	assert.Equal(t, 30*time.Second, c.CommandTimeout)
	assert.Equal(t, "1920x1080", c.Screen)
	assert.Empty(t, c.File)
}

func TestLoadPrecedence(t *testing.T) {
	cfg := writeConfig(t, "width: 50%\nfont-size: 14\nadvance-many: 3\n")
	t.Setenv("IMGMANAGE_FONT_SIZE", "16")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--width", "800"}))

	c, err := Load(viper.New(), fs, cfg)
	require.NoError(t, err)
	assert.Equal(t, "800", c.Width, "flag beats file")
	assert.Equal(t, 16, c.FontSize, "env beats file")
	assert.Equal(t, 3, c.AdvanceMany, "file beats default")
	assert.Equal(t, cfg, c.File)
}

func TestLoadStringArraysKeepCommas(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	fs := testFlags()
	require.NoError(t, fs.Parse([]string{
		"-F", "/pics/a,b.list",
		"-F", "/pics/c.list",
		"--keymap", "/keys/x,y.yaml",
	}))

	c, err := Load(viper.New(), fs, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"/pics/a,b.list", "/pics/c.list"}, c.Files)
	assert.Equal(t, []string{"/keys/x,y.yaml"}, c.Keymaps)
}

func TestLoadStringArraysFromFile(t *testing.T) {
	cfg := writeConfig(t, "file:\n  - /pics/one.list\n  - /pics/two.list\n")
	fs := testFlags()
	require.NoError(t, fs.Parse(nil))

	c, err := Load(viper.New(), fs, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"/pics/one.list", "/pics/two.list"}, c.Files)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(viper.New(), nil, filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadValidates(t *testing.T) {
	cfg := writeConfig(t, "advance-many: 0\n")
	_, err := Load(viper.New(), nil, cfg)
	assert.Error(t, err)
}

func TestPairFlags(t *testing.T) {
	fs := testFlags()
	args := JoinPairArgs([]string{
		"a.png", "--bind", "Ctrl+e", "gimp \"$1\"", "--logger", "gather", "trace",
		"--bind", "x", "echo hi", "--", "--bind", "not", "joined",
	}, "bind", "logger")
	require.NoError(t, fs.Parse(args))

	c, err := Load(viper.New(), fs, writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, []Pair{{"Ctrl+e", `gimp "$1"`}, {"x", "echo hi"}}, c.Binds)
	assert.Equal(t, []Pair{{"gather", "trace"}}, c.Loggers)
	assert.Equal(t, []string{"a.png", "--bind", "not", "joined"}, fs.Args())
}

func TestPairValueNeedsTwo(t *testing.T) {
	fs := testFlags()
	err := fs.Parse(JoinPairArgs([]string{"--bind", "lonely"}, "bind"))
	assert.Error(t, err)
}

func TestParseScreen(t *testing.T) {
	w, h, err := ParseScreen("2560X1440")
	require.NoError(t, err)
	assert.Equal(t, 2560, w)
	assert.Equal(t, 1440, h)

	for _, bad := range []string{"", "1920", "0x10", "axb"} {
		_, _, err := ParseScreen(bad)
		assert.Error(t, err, bad)
	}
}
