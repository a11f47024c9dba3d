package manager

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"imgmanage/internal/overlay"
	"imgmanage/internal/valuefmt"
)

const (
	textMargin     = 6
	textLineHeight = 1.5 // multiple of the font size
)

// ToggleText shows or hides the text overlay.
func (m *Manager) ToggleText() {
	m.textOn = !m.textOn
	m.refreshText()
}

// TextShown reports whether the text overlay is on.
func (m *Manager) TextShown() bool { return m.textOn }

// InfoLines describes the current image: name, position, dimensions,
// size, modification time and a few EXIF fields.
func (m *Manager) InfoLines() []string {
	path := m.Path()
	lines := []string{
		fmt.Sprintf("%s [%s/%s]", path, humanize.Comma(int64(m.index+1)), humanize.Comma(int64(len(m.images)))),
	}
	info, err := m.media.Info(path)
	if err != nil {
		return append(lines, err.Error())
	}
	if info.Width > 0 {
		lines = append(lines, fmt.Sprintf("%dx%d %s", info.Width, info.Height, info.Type.Mime))
	} else {
		lines = append(lines, info.Type.Mime)
	}
	lines = append(lines,
		fmt.Sprintf("%s (%s bytes)", valuefmt.FormatSize(float64(info.Size)), humanize.Comma(info.Size)),
		fmt.Sprintf("%s (%s)", valuefmt.FormatTime(info.ModTime, valuefmt.DefaultTimestampFormat), humanize.Time(info.ModTime)),
	)
	keys := make([]string, 0, len(info.EXIF))
	for k := range info.EXIF {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", k, strings.Trim(info.EXIF[k], `"`)))
	}
	return lines
}

func (m *Manager) textFromProgram() []string {
	lines, err := m.runner.Pipe(context.Background(), m.opts.AddTextFrom, []string{m.Path()})
	if err != nil {
		m.log.Warn("add-text-from failed", "program", m.opts.AddTextFrom, "error", err)
		return []string{fmt.Sprintf("%s: %v", filepath.Base(m.opts.AddTextFrom), err)}
	}
	return lines
}

// refreshText replaces the overlay lines this manager owns. Text added
// by others through Overlay() is left alone.
func (m *Manager) refreshText() {
	if len(m.textHandles) > 0 {
		m.overlay.Clear(m.textHandles...)
		m.textHandles = nil
	}
	if !m.textOn {
		return
	}
	var lines []string
	if m.opts.AddText || m.opts.AddTextFrom == "" {
		lines = append(lines, m.InfoLines()...)
	}
	if m.opts.AddTextFrom != "" {
		lines = append(lines, m.textFromProgram()...)
	}
	step := m.overlay.Style().Font.Size * textLineHeight
	for i, line := range lines {
		pos := overlay.Point{X: textMargin, Y: textMargin + float32(i)*step}
		m.textHandles = append(m.textHandles, m.overlay.Add(pos, line))
	}
}
