// Package actionlog records the file actions the user asked for. Nothing
// here touches the images themselves: entries are only printed, to
// standard output and optionally to a file, when the log is flushed.
package actionlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"imgmanage/internal/logging"
)

// Entry is one recorded intent, such as ("rename", "a.png b.png").
type Entry struct {
	Action string
	Target string
}

// Log is the append-only list of recorded intents.
type Log struct {
	entries  []Entry
	format   *Format
	csv      bool
	onRecord func(Entry)
	log      *logging.Logger
}

// Option configures a Log.
type Option func(*Log)

// WithFormat sets the text line format.
func WithFormat(f *Format) Option {
	return func(l *Log) { l.format = f }
}

// WithCSV writes entries as CSV records instead of formatted lines.
func WithCSV() Option {
	return func(l *Log) { l.csv = true }
}

// New creates an empty log using DefaultFormat.
func New(log *logging.Logger, opts ...Option) *Log {
	if log == nil {
		log = logging.Nop()
	}
	f, _ := ParseFormat(DefaultFormat)
	l := &Log{format: f, log: log}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// OnRecord sets a callback run after each entry is recorded.
func (l *Log) OnRecord(fn func(Entry)) { l.onRecord = fn }

// Record appends an intent.
func (l *Log) Record(action, target string) {
	e := Entry{Action: action, Target: target}
	l.entries = append(l.entries, e)
	l.log.Info("recorded", "action", action, "target", target)
	if l.onRecord != nil {
		l.onRecord(e)
	}
}

// Entries returns a copy of everything recorded so far.
func (l *Log) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}

// Len returns the number of recorded entries.
func (l *Log) Len() int { return len(l.entries) }

// WriteTo renders every entry to w.
func (l *Log) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	if l.csv {
		enc := csv.NewWriter(cw)
		for _, e := range l.entries {
			if err := enc.Write([]string{e.Action, e.Target}); err != nil {
				return cw.n, err
			}
		}
		enc.Flush()
		return cw.n, enc.Error()
	}
	for _, e := range l.entries {
		if _, err := io.WriteString(cw, l.format.Render(e)); err != nil {
			return cw.n, err
		}
	}
	return cw.n, nil
}

// String renders the whole log.
func (l *Log) String() string {
	var b strings.Builder
	_, _ = l.WriteTo(&b)
	return b.String()
}

// Flush writes the log to stdout and, when path is set, to that file,
// appending or truncating it.
func (l *Log) Flush(stdout io.Writer, path string, appendFile bool) error {
	l.log.Debug("flushing action log", "entries", len(l.entries), "path", path, "append", appendFile)
	if stdout != nil {
		if _, err := l.WriteTo(stdout); err != nil {
			return fmt.Errorf("write actions: %w", err)
		}
	}
	if path == "" {
		return nil
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if appendFile {
		flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	if _, err := l.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// AppendLine appends line and a newline to path, creating it if needed.
// Used for the --write1/--write2 mark files.
func AppendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(f, line); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
