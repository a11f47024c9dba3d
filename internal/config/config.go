// Package config merges command-line flags, IMGMANAGE_* environment
// variables and an optional YAML config file into one Config.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. IMGMANAGE_FONT_SIZE.
const EnvPrefix = "IMGMANAGE"

// Keys shared by flags, environment and config file.
const (
	KeyRecurse        = "recurse"
	KeyFile           = "file"
	KeyIgnoreErrors   = "ignore-errors"
	KeyWidth          = "width"
	KeyHeight         = "height"
	KeyScreen         = "screen"
	KeyFontFamily     = "font-family"
	KeyFontSize       = "font-size"
	KeyTextColor      = "text-color"
	KeyAddText        = "add-text"
	KeyAddTextFrom    = "add-text-from"
	KeyOut            = "out"
	KeyFormat         = "format"
	KeyAppend         = "append"
	KeyCSV            = "csv"
	KeyWrite1         = "write1"
	KeyWrite2         = "write2"
	KeySort           = "sort"
	KeySortVia        = "sort-via"
	KeyReverse        = "reverse"
	KeyNoColor        = "no-color"
	KeyLevel          = "level"
	KeyAdvanceMany    = "advance-many"
	KeyCommandTimeout = "command-timeout"
	KeyZoomStep       = "zoom-step"
	KeyScale          = "scale"
	KeyCache          = "cache"
	KeyKeymap         = "keymap"
	KeyHistory        = "history"
)

// Config is the resolved runtime configuration.
type Config struct {
	Recurse      bool
	Files        []string
	IgnoreErrors bool

	Width, Height string
	Screen        string
	FontFamily    string
	FontSize      int
	TextColor     string
	AddText       bool
	AddTextFrom   string
	Scale         string
	ZoomStep      int

	Out    string
	Format string
	Append bool
	CSV    bool

	Write1, Write2 string
	Binds          []Pair
	Keymaps        []string

	Sort    string
	SortVia string
	Reverse bool

	NoColor bool
	Level   string
	Loggers []Pair

	AdvanceMany    int
	CommandTimeout time.Duration
	History        int
	Cache          string

	// File is the config file that was read, if any.
	File string
}

// SetDefaults installs the built-in defaults.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyWidth, "100%")
	v.SetDefault(KeyHeight, "100%")
	v.SetDefault(KeyScreen, "1920x1080")
	v.SetDefault(KeyFontFamily, "monospace")
	v.SetDefault(KeyFontSize, 10)
	v.SetDefault(KeyTextColor, "white")
	v.SetDefault(KeyFormat, `{} {}\n`)
	v.SetDefault(KeySort, "name")
	v.SetDefault(KeyLevel, "info")
	v.SetDefault(KeyAdvanceMany, 10)
	v.SetDefault(KeyCommandTimeout, 30*time.Second)
	v.SetDefault(KeyZoomStep, 10)
	v.SetDefault(KeyScale, "shrink")
	v.SetDefault(KeyHistory, 100)
}

// DefaultFile is $HOME/.config/imgmanage/config.yaml.
func DefaultFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "imgmanage", "config.yaml")
}

// Load resolves the configuration. An explicit file must exist; the
// default file is read only when present. flags may be nil.
func Load(v *viper.Viper, flags *pflag.FlagSet, file string) (*Config, error) {
	SetDefaults(v)

	explicit := file != ""
	if !explicit {
		file = DefaultFile()
	}
	used := ""
	if file != "" {
		v.SetConfigFile(file)
		err := v.ReadInConfig()
		switch {
		case err == nil:
			used = file
		case explicit:
			return nil, fmt.Errorf("read config %s: %w", file, err)
		default:
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", file, err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	c := &Config{
		Recurse:        v.GetBool(KeyRecurse),
		Files:          stringArrayOf(v, flags, KeyFile),
		IgnoreErrors:   v.GetBool(KeyIgnoreErrors),
		Width:          v.GetString(KeyWidth),
		Height:         v.GetString(KeyHeight),
		Screen:         v.GetString(KeyScreen),
		FontFamily:     v.GetString(KeyFontFamily),
		FontSize:       v.GetInt(KeyFontSize),
		TextColor:      v.GetString(KeyTextColor),
		AddText:        v.GetBool(KeyAddText),
		AddTextFrom:    v.GetString(KeyAddTextFrom),
		Scale:          v.GetString(KeyScale),
		ZoomStep:       v.GetInt(KeyZoomStep),
		Out:            v.GetString(KeyOut),
		Format:         v.GetString(KeyFormat),
		Append:         v.GetBool(KeyAppend),
		CSV:            v.GetBool(KeyCSV),
		Write1:         v.GetString(KeyWrite1),
		Write2:         v.GetString(KeyWrite2),
		Keymaps:        stringArrayOf(v, flags, KeyKeymap),
		Sort:           v.GetString(KeySort),
		SortVia:        v.GetString(KeySortVia),
		Reverse:        v.GetBool(KeyReverse),
		NoColor:        v.GetBool(KeyNoColor),
		Level:          v.GetString(KeyLevel),
		AdvanceMany:    v.GetInt(KeyAdvanceMany),
		CommandTimeout: v.GetDuration(KeyCommandTimeout),
		History:        v.GetInt(KeyHistory),
		Cache:          v.GetString(KeyCache),
		File:           used,
	}
	if flags != nil {
		c.Binds = pairsOf(flags, "bind")
		c.Loggers = pairsOf(flags, "logger")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks values that viper cannot type-check.
func (c *Config) Validate() error {
	if c.AdvanceMany < 1 {
		return fmt.Errorf("advance-many must be positive, got %d", c.AdvanceMany)
	}
	if c.FontSize < 1 {
		return fmt.Errorf("font-size must be positive, got %d", c.FontSize)
	}
	if c.ZoomStep < 1 || c.ZoomStep > 100 {
		return fmt.Errorf("zoom-step must be within [1, 100], got %d", c.ZoomStep)
	}
	return nil
}

// ParseScreen parses "WxH".
func ParseScreen(s string) (int, int, error) {
	var w, h int
	if _, err := fmt.Sscanf(strings.ToLower(strings.TrimSpace(s)), "%dx%d", &w, &h); err != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid screen size %q; expected WIDTHxHEIGHT", s)
	}
	return w, h, nil
}

func pairsOf(flags *pflag.FlagSet, name string) []Pair {
	f := flags.Lookup(name)
	if f == nil {
		return nil
	}
	if pv, ok := f.Value.(*PairValue); ok {
		return pv.Pairs()
	}
	return nil
}

// stringArrayOf reads a repeatable flag from the flag set when it was
// given, keeping commas inside each value; otherwise the config file or
// environment value from v is used.
func stringArrayOf(v *viper.Viper, flags *pflag.FlagSet, key string) []string {
	if flags != nil && flags.Changed(key) {
		if vals, err := flags.GetStringArray(key); err == nil {
			return vals
		}
	}
	return v.GetStringSlice(key)
}
