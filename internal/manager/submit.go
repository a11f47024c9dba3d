package manager

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gobwas/glob"
	"github.com/sahilm/fuzzy"

	"imgmanage/internal/mode"
	"imgmanage/internal/valuefmt"
)

// Submit takes the text from the input box and acts on it according to
// the mode that was active. User errors are shown and returned; the mode
// is back to None either way.
func (m *Manager) Submit() error {
	md, text := m.mode.Submit()
	m.log.Debug("submit", "mode", md.String(), "text", text)

	var err error
	switch md {
	case mode.Rename:
		err = m.rename(text)
	case mode.Goto:
		err = m.GoTo(text)
	case mode.SetImage:
		err = m.Find(text)
	case mode.Label:
		err = m.label(text)
	case mode.Command:
		err = m.command(text)
	case mode.None:
		m.log.Warn("submit without an input mode", "text", text)
	default:
		m.log.Warn("invalid mode", "mode", md.String(), "text", text)
	}
	if err != nil {
		m.view.Status(err.Error())
	}
	return err
}

func (m *Manager) rename(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		m.log.Warn("empty rename target; nothing recorded")
		m.view.Status("Rename cancelled: empty name")
		return nil
	}
	target := text
	if !strings.ContainsRune(text, filepath.Separator) && !strings.ContainsRune(text, '/') {
		target = filepath.Join(filepath.Dir(m.Path()), text)
	}
	m.out.Record("rename:"+target, m.Path())
	m.view.Status(fmt.Sprintf("Rename %s -> %s", filepath.Base(m.Path()), target))
	return nil
}

func (m *Manager) label(text string) error {
	if strings.TrimSpace(text) == "" {
		m.log.Warn("empty label ignored")
		return nil
	}
	m.out.Record("label:"+text, m.Path())
	m.view.Status(fmt.Sprintf("Label %q: %s", text, filepath.Base(m.Path())))
	return nil
}

func (m *Manager) command(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	m.runCommand(text)
	return nil
}

// GoTo jumps by number or name. A number n in [1, count] is 1-based; a
// negative n counts from the end (-1 is the last image). Anything else
// is matched against full paths first, then base names.
func (m *Manager) GoTo(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	count := len(m.images)
	if n, err := strconv.Atoi(text); err == nil {
		switch {
		case n >= 1 && n <= count:
			return m.GoToIndex(n - 1)
		case n <= -1 && n >= -count:
			return m.GoToIndex(count + n)
		}
		return fmt.Errorf("%w: %d not in [1, %d]", ErrIndexOutOfRange, n, count)
	}
	for i, p := range m.images {
		if p == text {
			return m.GoToIndex(i)
		}
	}
	return m.GoToName(text)
}

// Find jumps to the next image, after the current one and wrapping
// around, whose base name matches the glob pattern. A pattern without
// glob characters matches as a substring. When nothing matches, the
// best fuzzy match is used.
func (m *Manager) Find(pattern string) error {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil
	}
	names := make([]string, len(m.images))
	for i, p := range m.images {
		names[i] = filepath.Base(p)
	}

	expr := pattern
	if !strings.ContainsAny(expr, "*?[{") {
		expr = "*" + expr + "*"
	}
	if g, err := glob.Compile(expr); err != nil {
		m.log.Debug("bad glob; trying fuzzy match", "pattern", pattern, "error", err)
	} else {
		start := (m.index + 1) % len(names)
		for i, name := range valuefmt.IterateFrom(names, start) {
			if g.Match(name) {
				return m.GoToIndex(i)
			}
		}
	}

	matches := fuzzy.Find(pattern, names)
	if len(matches) == 0 {
		return fmt.Errorf("%w: %q", ErrNoMatch, pattern)
	}
	m.log.Debug("fuzzy match", "pattern", pattern, "name", matches[0].Str, "score", matches[0].Score)
	return m.GoToIndex(matches[0].Index)
}
