// Command imgmanage browses images and prints the actions chosen for
// them (rename, delete, label, mark) without touching any file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"imgmanage/internal/actionlog"
	"imgmanage/internal/config"
	"imgmanage/internal/gather"
	"imgmanage/internal/history"
	"imgmanage/internal/logging"
	"imgmanage/internal/manager"
	"imgmanage/internal/media"
	"imgmanage/internal/metacache"
	"imgmanage/internal/overlay"
	"imgmanage/internal/procexec"
	"imgmanage/internal/sorting"
	"imgmanage/internal/ui"
)

const appID = "io.github.imgmanage"

// pairFlags take two operands each.
var pairFlags = []string{"bind", "logger"}

// session is everything resolved from the command line that the window
// needs.
type session struct {
	cfg     *config.Config
	log     *logging.Logger
	images  []string
	keymaps []*config.Keymap
	opts    manager.Options
	window  ui.Options
	style   overlay.Style
	out     *actionlog.Log
	media   *media.Service
	runner  *procexec.Runner
	cache   *metacache.Cache
	stdout  io.Writer
}

func (s *session) close() {
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			s.log.Warn("closing metadata cache", "error", err)
		}
	}
}

// NewRootCmd creates the root command. launch runs the window for a
// resolved session; tests pass a function that records the session.
func NewRootCmd(launch func(*session) error) *cobra.Command {
	var (
		configFile string
		help       helpFlags
		levels     struct{ trace, verbose, warning, errors bool }
	)
	binds := config.NewPairValue("KEY CMD")
	loggers := config.NewPairValue("NAME LEVEL")

	cmd := &cobra.Command{
		Use:   "imgmanage [flags] [image|directory]...",
		Short: "Browse images and record what to do with them",
		Long: `imgmanage shows images one at a time. Keys rename, delete, label and mark
the current image; nothing is changed on disk. The chosen actions are
printed when the window closes.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if help.any() {
				writeHelp(cmd.OutOrStdout(), cmd.UsageString(), help)
				return nil
			}
			cmd.SilenceUsage = true

			cfg, err := config.Load(viper.New(), cmd.Flags(), configFile)
			if err != nil {
				return err
			}
			switch {
			case levels.trace:
				cfg.Level = "trace"
			case levels.verbose:
				cfg.Level = "debug"
			case levels.warning:
				cfg.Level = "warn"
			case levels.errors:
				cfg.Level = "error"
			}

			s, err := newSession(cfg, args, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.close()
			return launch(s)
		},
	}

	f := cmd.Flags()
	f.SortFlags = false
	f.StringVar(&configFile, "config", "", "config file (default "+config.DefaultFile()+")")

	f.BoolP(config.KeyRecurse, "R", false, "scan directories recursively")
	f.StringArrayP(config.KeyFile, "F", nil, "read image paths from PATH, one per line (repeatable)")
	f.Bool(config.KeyIgnoreErrors, false, "warn about missing inputs instead of failing")

	f.String(config.KeyWidth, "100%", "window width in pixels or percent of the screen")
	f.String(config.KeyHeight, "100%", "window height in pixels or percent of the screen")
	f.String(config.KeyScreen, "1920x1080", "screen size percentages resolve against (WxH)")
	f.String(config.KeyFontFamily, overlay.DefaultFamily, "overlay text font family")
	f.Int(config.KeyFontSize, overlay.DefaultSize, "overlay text font size")
	f.String(config.KeyTextColor, "white", "overlay text color (name, #rrggbb or r,g,b)")
	f.Bool(config.KeyAddText, false, "draw the image path and attributes over the image")
	f.String(config.KeyAddTextFrom, "", "draw the output of PROG fed the image path over the image")
	f.String(config.KeyScale, "shrink", "initial zoom mode: none, shrink or exact")
	f.Int(config.KeyZoomStep, 10, "percent to zoom in or out per key press")

	f.StringP(config.KeyOut, "o", "", "also write the action log to PATH")
	f.StringP(config.KeyFormat, "f", actionlog.DefaultFormat, "action log line format")
	f.BoolP(config.KeyAppend, "a", false, "append to --out instead of truncating it")
	f.Bool(config.KeyCSV, false, "write the action log as CSV")

	f.String(config.KeyWrite1, "", "append the image path to PATH on mark 1")
	f.String(config.KeyWrite2, "", "append the image path to PATH on mark 2")
	f.Var(binds, "bind", "bind KEY to run shell command CMD (repeatable)")
	f.StringArray(config.KeyKeymap, nil, "load key bindings from a YAML file (repeatable)")

	f.StringP(config.KeySort, "s", string(sorting.Default), "sort images by KEY (see --help-sort)")
	f.StringP(config.KeySortVia, "S", "", "sort images by the output of PROG")
	f.BoolP(config.KeyReverse, "r", false, "reverse the sort order")

	f.Int(config.KeyAdvanceMany, 10, "images to skip with Up and Down")
	f.Duration(config.KeyCommandTimeout, 30*time.Second, "time limit for commands run from the window")
	f.Int(config.KeyHistory, history.DefaultCapacity, "jump list length")
	f.String(config.KeyCache, "", "cache image metadata in this bbolt file or directory")

	f.BoolP(config.KeyNoColor, "C", false, "disable colored log output")
	f.String(config.KeyLevel, "info", "log level: trace, debug, info, warn, error")
	f.Var(loggers, "logger", "set the level of one log component (repeatable)")
	f.BoolVarP(&levels.trace, "trace", "t", false, "log level trace")
	f.BoolVarP(&levels.verbose, "verbose", "v", false, "log level debug")
	f.BoolVarP(&levels.warning, "warning", "w", false, "log level warn")
	f.BoolVarP(&levels.errors, "error", "e", false, "log level error")

	f.BoolVar(&help.textFrom, "help-text-from", false, "help for --add-text-from, then exit")
	f.BoolVar(&help.write, "help-write", false, "help for the action log and --write1/--write2, then exit")
	f.BoolVar(&help.sort, "help-sort", false, "help for --sort and --sort-via, then exit")
	f.BoolVar(&help.keys, "help-keys", false, "list the key bindings, then exit")
	f.BoolVar(&help.all, "help-all", false, "show all help text, then exit")

	cmd.MarkFlagsMutuallyExclusive(config.KeySort, config.KeySortVia)
	cmd.MarkFlagsMutuallyExclusive("trace", "verbose", "warning", "error", config.KeyLevel)
	return cmd
}

// newSession validates the configuration, gathers and sorts the images
// and builds the collaborators the window shares.
func newSession(cfg *config.Config, args []string, stdout, stderr io.Writer) (*session, error) {
	log := logging.NewConsole(stderr, cfg.Level, !cfg.NoColor)
	for _, p := range cfg.Loggers {
		if err := log.SetComponentLevel(p.First, p.Second); err != nil {
			return nil, fmt.Errorf("--logger %s: %w", p.First, err)
		}
	}
	if cfg.File != "" {
		log.Debug("read config", "file", cfg.File)
	}

	s := &session{cfg: cfg, log: log, stdout: stdout}
	var err error
	if s.window, err = windowOptions(cfg); err != nil {
		return nil, err
	}
	if s.style, err = textStyle(cfg); err != nil {
		return nil, err
	}
	format, err := actionlog.ParseFormat(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("--format: %w", err)
	}
	logOpts := []actionlog.Option{actionlog.WithFormat(format)}
	if cfg.CSV {
		logOpts = append(logOpts, actionlog.WithCSV())
	}
	s.out = actionlog.New(log.Component("actionlog"), logOpts...)
	for _, path := range cfg.Keymaps {
		km, err := config.LoadKeymap(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		s.keymaps = append(s.keymaps, km)
	}
	mode, err := sorting.ParseMode(cfg.Sort)
	if err != nil {
		return nil, err
	}

	s.runner = procexec.NewRunner(log.Component("procexec"))
	if cfg.Cache != "" {
		if s.cache, err = metacache.Open(cfg.Cache, log.Component("metacache")); err != nil {
			return nil, err
		}
		s.media = media.NewService(s.cache, log.Component("media"))
	} else {
		s.media = media.NewService(nil, log.Component("media"))
	}

	images, err := gather.Images(args, cfg.Files, cfg.Recurse, cfg.IgnoreErrors, log.Component("gather"))
	if err != nil {
		s.close()
		return nil, err
	}
	if len(images) == 0 {
		s.close()
		return nil, manager.ErrNoImages
	}
	if s.images, err = s.sort(images, mode); err != nil {
		s.close()
		return nil, err
	}

	s.opts = manager.Options{
		AdvanceMany:    cfg.AdvanceMany,
		CommandTimeout: cfg.CommandTimeout,
		ZoomStep:       cfg.ZoomStep,
		History:        cfg.History,
		AddText:        cfg.AddText,
		AddTextFrom:    cfg.AddTextFrom,
		Write1:         cfg.Write1,
		Write2:         cfg.Write2,
	}
	return s, nil
}

func (s *session) sort(images []string, mode sorting.Mode) ([]string, error) {
	log := s.log.Component("sorting")
	if s.cfg.SortVia != "" {
		return sorting.Via(context.Background(), s.runner, s.cfg.SortVia, images, s.cfg.Reverse, log)
	}
	sorter := sorting.New(log)
	if s.cache != nil {
		sorter.Stat = func(path string) (sorting.FileFacts, error) {
			info, err := s.media.Stat(path)
			if err != nil {
				return sorting.OSStat(path)
			}
			return sorting.FileFacts{Size: info.Size, ModTime: info.ModTime}, nil
		}
	}
	return sorter.Sort(images, mode, s.cfg.Reverse)
}

func windowOptions(cfg *config.Config) (ui.Options, error) {
	screenW, screenH, err := config.ParseScreen(cfg.Screen)
	if err != nil {
		return ui.Options{}, err
	}
	size, err := ui.ResolveSize(cfg.Width, cfg.Height, screenW, screenH)
	if err != nil {
		return ui.Options{}, err
	}
	scale, err := ui.ParseScale(cfg.Scale)
	if err != nil {
		return ui.Options{}, err
	}
	return ui.Options{Size: size, Scale: scale, TextSize: float32(cfg.FontSize)}, nil
}

func textStyle(cfg *config.Config) (overlay.Style, error) {
	style := overlay.DefaultStyle()
	c, err := overlay.ParseColor(cfg.TextColor)
	if err != nil {
		return style, fmt.Errorf("--text-color: %w", err)
	}
	style.Color = c
	font, err := overlay.ParseFont(fmt.Sprintf("%s,%d", cfg.FontFamily, cfg.FontSize), style.Font)
	if err != nil {
		return style, fmt.Errorf("--font-family/--font-size: %w", err)
	}
	style.Font = font
	return style, nil
}

// binder is the part of the manager that takes extra bindings.
type binder interface {
	BindAction(keys, name string, args ...any) error
	BindCommand(keys, command string)
}

// applyBindings adds --bind pairs and keymap entries after the built-in
// keys, so they add to existing keys rather than replace them.
func applyBindings(b binder, binds []config.Pair, keymaps []*config.Keymap) error {
	for _, p := range binds {
		b.BindCommand(p.First, p.Second)
	}
	var errs []error
	for _, km := range keymaps {
		for _, kb := range km.Bindings {
			if kb.Command != "" {
				b.BindCommand(kb.Key, kb.Command)
				continue
			}
			if err := b.BindAction(kb.Key, kb.Action, kb.Args...); err != nil {
				errs = append(errs, fmt.Errorf("keymap %s: %w", kb.Key, err))
			}
		}
	}
	return errors.Join(errs...)
}

// launchGUI opens the window and blocks until it closes. The action log
// is flushed on close.
func launchGUI(s *session) error {
	a := app.NewWithID(appID)
	reg := overlay.NewRegistry(s.log.Component("overlay"))
	reg.SetStyle(s.style)
	w := ui.NewWindow(a, reg, s.window, s.log.Component("ui"))

	m, err := manager.New(s.images, s.opts, manager.Deps{
		View:    w,
		Input:   w.Input(),
		Out:     s.out,
		Media:   s.media,
		Overlay: reg,
		Runner:  s.runner,
		Log:     s.log.Component("manager"),
	})
	if err != nil {
		return err
	}
	w.Attach(m)
	if err := applyBindings(m, s.cfg.Binds, s.keymaps); err != nil {
		return err
	}

	var flushErr error
	w.OnClose(func() {
		flushErr = s.out.Flush(s.stdout, s.cfg.Out, s.cfg.Append)
	})
	if err := m.Start(); err != nil {
		s.log.Error("cannot show first image", err)
		return err
	}
	w.ShowAndRun()
	return flushErr
}

// execute runs root with args, joining the two operands of pair flags
// first.
func execute(root *cobra.Command, args []string) error {
	root.SetArgs(config.JoinPairArgs(args, pairFlags...))
	return root.Execute()
}

func main() {
	if err := execute(NewRootCmd(launchGUI), os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
