package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"imgmanage/internal/logging"
)

// DefaultMaxLogMessages bounds the status history.
const DefaultMaxLogMessages = 100

// StatusLog shows user-facing messages in the status bar, one at a time,
// with up/down buttons paging through the last few.
type StatusLog struct {
	messages []string
	current  int
	max      int
	log      *logging.Logger

	label   *widget.Label
	upBtn   *widget.Button
	downBtn *widget.Button
}

// NewStatusLog creates the status bar widgets. Messages are also written
// to log at info level.
func NewStatusLog(maxMessages int, log *logging.Logger) *StatusLog {
	if maxMessages <= 0 {
		maxMessages = DefaultMaxLogMessages
	}
	if log == nil {
		log = logging.Nop()
	}
	s := &StatusLog{
		messages: make([]string, 0, maxMessages),
		current:  -1,
		max:      maxMessages,
		log:      log,
	}
	s.label = widget.NewLabel("")
	s.label.Truncation = fyne.TextTruncateEllipsis
	s.upBtn = widget.NewButtonWithIcon("", theme.MoveUpIcon(), s.Previous)
	s.downBtn = widget.NewButtonWithIcon("", theme.MoveDownIcon(), s.Next)
	s.update()
	return s
}

// Container lays the status widgets out as a bar.
func (s *StatusLog) Container() fyne.CanvasObject {
	return container.NewBorder(nil, nil, nil, container.NewHBox(s.upBtn, s.downBtn), s.label)
}

// Add appends message and shows it.
func (s *StatusLog) Add(message string) {
	s.log.Info(message)
	s.messages = append(s.messages, message)
	if len(s.messages) > s.max {
		s.messages = s.messages[len(s.messages)-s.max:]
	}
	s.current = len(s.messages) - 1
	s.update()
}

// Messages returns the retained messages, oldest first.
func (s *StatusLog) Messages() []string {
	return append([]string(nil), s.messages...)
}

// Text returns what the status label shows.
func (s *StatusLog) Text() string { return s.label.Text }

func (s *StatusLog) update() {
	if len(s.messages) == 0 {
		s.label.SetText("")
		s.upBtn.Disable()
		s.downBtn.Disable()
		return
	}
	s.current = max(0, min(s.current, len(s.messages)-1))
	s.label.SetText(fmt.Sprintf("[%d/%d] %s", s.current+1, len(s.messages), s.messages[s.current]))
	if s.current <= 0 {
		s.upBtn.Disable()
	} else {
		s.upBtn.Enable()
	}
	if s.current >= len(s.messages)-1 {
		s.downBtn.Disable()
	} else {
		s.downBtn.Enable()
	}
}

// Previous shows the message before the current one.
func (s *StatusLog) Previous() {
	if s.current <= 0 {
		return
	}
	s.current--
	s.update()
}

// Next shows the message after the current one.
func (s *StatusLog) Next() {
	if s.current >= len(s.messages)-1 {
		return
	}
	s.current++
	s.update()
}
