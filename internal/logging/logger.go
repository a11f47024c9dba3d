// Package logging provides the leveled logger handed to every component.
//
// Loggers are values passed explicitly to constructors; nothing in this
// package mutates process-wide state. Trace is a real level below debug.
package logging

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Levels holds the default level and per-component overrides.
type Levels struct {
	mu     sync.RWMutex
	def    zerolog.Level
	byName map[string]zerolog.Level
}

func newLevels(def zerolog.Level) *Levels {
	return &Levels{def: def, byName: make(map[string]zerolog.Level)}
}

func (lv *Levels) get(name string) zerolog.Level {
	lv.mu.RLock()
	defer lv.mu.RUnlock()
	if l, ok := lv.byName[name]; ok {
		return l
	}
	return lv.def
}

// Logger wraps zerolog with component-scoped levels.
type Logger struct {
	zl     zerolog.Logger
	levels *Levels
	name   string
}

// ParseLevel accepts a level name (trace, debug, info, warn, warning, error)
// or a number. Numbers follow the ten-step severity scale used by the
// --logger flag: 5 trace, 10 debug, 20 info, 30 warn, 40 error.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		switch {
		case n < 10:
			return zerolog.TraceLevel, nil
		case n < 20:
			return zerolog.DebugLevel, nil
		case n < 30:
			return zerolog.InfoLevel, nil
		case n < 40:
			return zerolog.WarnLevel, nil
		default:
			return zerolog.ErrorLevel, nil
		}
	}
	switch s {
	case "warning":
		return zerolog.WarnLevel, nil
	case "":
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q", s)
	}
	return lvl, nil
}

// New creates a JSON logger writing to w at the given level.
// An unparsable level falls back to info.
func New(w io.Writer, level string) *Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	base := zerolog.New(w).With().Timestamp().Logger()
	return &Logger{zl: base.Level(lvl), levels: newLevels(lvl)}
}

// NewConsole creates a logger with human-readable output.
func NewConsole(w io.Writer, level string, color bool) *Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	output := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    !color,
		TimeFormat: time.TimeOnly,
	}
	base := zerolog.New(output).With().Timestamp().Logger()
	return &Logger{zl: base.Level(lvl), levels: newLevels(lvl)}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	base := zerolog.Nop()
	return &Logger{zl: base, levels: newLevels(zerolog.Disabled)}
}

// SetLevel changes the default level for this logger and any component
// logger created afterwards without an override.
func (l *Logger) SetLevel(level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	l.levels.mu.Lock()
	l.levels.def = lvl
	l.levels.mu.Unlock()
	l.zl = l.zl.Level(l.levels.get(l.name))
	return nil
}

// SetComponentLevel overrides the level of one named component. It only
// affects component loggers created after the call.
func (l *Logger) SetComponentLevel(name, level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	l.levels.mu.Lock()
	l.levels.byName[name] = lvl
	l.levels.mu.Unlock()
	if name == l.name {
		l.zl = l.zl.Level(lvl)
	}
	return nil
}

// Component creates a sub-logger for a specific component.
func (l *Logger) Component(name string) *Logger {
	return &Logger{
		zl:     l.zl.With().Str("component", name).Logger().Level(l.levels.get(name)),
		levels: l.levels,
		name:   name,
	}
}

// With adds a field to the logger context.
func (l *Logger) With(key string, value interface{}) *Logger {
	return &Logger{
		zl:     l.zl.With().Interface(key, value).Logger(),
		levels: l.levels,
		name:   l.name,
	}
}

// Level reports the effective level of this logger.
func (l *Logger) Level() zerolog.Level {
	return l.zl.GetLevel()
}

// Enabled reports whether a message at lvl would be written.
func (l *Logger) Enabled(lvl zerolog.Level) bool {
	return lvl >= l.zl.GetLevel()
}

// Trace logs at trace level.
func (l *Logger) Trace(msg string, fields ...interface{}) {
	addFields(l.zl.Trace(), fields...).Msg(msg)
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, fields ...interface{}) {
	addFields(l.zl.Debug(), fields...).Msg(msg)
}

// Info logs at info level.
func (l *Logger) Info(msg string, fields ...interface{}) {
	addFields(l.zl.Info(), fields...).Msg(msg)
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, fields ...interface{}) {
	addFields(l.zl.Warn(), fields...).Msg(msg)
}

// Error logs at error level. A non-nil err is attached as the "error" field.
func (l *Logger) Error(msg string, err error, fields ...interface{}) {
	event := l.zl.Error()
	if err != nil {
		event = event.Err(err)
	}
	addFields(event, fields...).Msg(msg)
}

// addFields adds key-value pairs to a log event.
// Fields are provided as key, value, key, value, ...
func addFields(event *zerolog.Event, fields ...interface{}) *zerolog.Event {
	if event == nil {
		return nil
	}
	for i := 0; i < len(fields)-1; i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		switch v := fields[i+1].(type) {
		case string:
			event.Str(key, v)
		case int:
			event.Int(key, v)
		case int64:
			event.Int64(key, v)
		case bool:
			event.Bool(key, v)
		case error:
			event.AnErr(key, v)
		case time.Duration:
			event.Dur(key, v)
		case []string:
			event.Strs(key, v)
		default:
			event.Interface(key, v)
		}
	}
	return event
}
