package ui

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"imgmanage/internal/keybind"
)

// Fyne key names that differ from the names used in bindings.
var fromFyneKey = map[fyne.KeyName]string{
	fyne.KeyPageUp:   "PageUp",
	fyne.KeyPageDown: "PageDown",
}

var toFyneKey = map[string]fyne.KeyName{
	"PageUp":   fyne.KeyPageUp,
	"PageDown": fyne.KeyPageDown,
}

// KeyFromEvent returns the binding name for a named key event, or "" for
// printable keys, which arrive as runes instead.
func KeyFromEvent(ev *fyne.KeyEvent) string {
	if name, ok := fromFyneKey[ev.Name]; ok {
		return name
	}
	if utf8.RuneCountInString(string(ev.Name)) <= 1 {
		return ""
	}
	return string(ev.Name)
}

// KeyFromRune returns the binding name for a typed rune. Upper-case
// letters become Shift combinations.
func KeyFromRune(r rune) string {
	if unicode.IsSpace(r) {
		return ""
	}
	if unicode.IsUpper(r) && unicode.ToLower(r) != r {
		return keybind.ModShift + "+" + string(unicode.ToLower(r))
	}
	return string(r)
}

// ShortcutFor converts a binding to a desktop shortcut. Bindings without
// Ctrl, Alt or Super on a printable key report false: they arrive through
// the rune handler.
func ShortcutFor(keys string) (*desktop.CustomShortcut, bool) {
	c, err := keybind.ParseCombo(keys)
	if err != nil || len(c.Modifiers) == 0 {
		return nil, false
	}
	if !c.Named() && len(c.Modifiers) == 1 && c.Has(keybind.ModShift) {
		return nil, false
	}
	var mod fyne.KeyModifier
	for _, m := range c.Modifiers {
		switch m {
		case keybind.ModCtrl:
			mod |= fyne.KeyModifierControl
		case keybind.ModAlt:
			mod |= fyne.KeyModifierAlt
		case keybind.ModShift:
			mod |= fyne.KeyModifierShift
		case keybind.ModSuper:
			mod |= fyne.KeyModifierSuper
		}
	}
	name, ok := toFyneKey[c.Key]
	if !ok {
		name = fyne.KeyName(strings.ToUpper(c.Key))
		if c.Named() {
			name = fyne.KeyName(c.Key)
		}
	}
	return &desktop.CustomShortcut{KeyName: name, Modifier: mod}, true
}

// bindKeys routes canvas key events into the manager's key table and
// keeps desktop shortcuts in step with it.
func (w *Window) bindKeys() {
	c := w.win.Canvas()
	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if keys := KeyFromEvent(ev); keys != "" {
			w.trigger(keys)
		}
	})
	c.SetOnTypedRune(func(r rune) {
		if keys := KeyFromRune(r); keys != "" {
			w.trigger(keys)
		}
	})
	for _, keys := range w.mgr.Keys().Keys() {
		w.addShortcut(keys)
	}
	w.mgr.Keys().OnCreate(w.addShortcut)
}

func (w *Window) addShortcut(keys string) {
	sc, ok := ShortcutFor(keys)
	if !ok {
		return
	}
	w.shortcuts[sc.ShortcutName()] = keys
	w.win.Canvas().AddShortcut(sc, func(fyne.Shortcut) { w.trigger(keys) })
}

// typedShortcut handles shortcuts the input entry passes up while it
// has focus.
func (w *Window) typedShortcut(s fyne.Shortcut) {
	if keys, ok := w.shortcuts[s.ShortcutName()]; ok {
		w.trigger(keys)
	}
}

func (w *Window) trigger(keys string) {
	w.log.Trace("key", "keys", keys)
	w.mgr.Trigger(keys)
}

// showShortcuts opens a window listing every bound key.
func (w *Window) showShortcuts() {
	if w.mgr == nil {
		return
	}
	lines := w.mgr.KeyHelp()
	rows := make([][2]string, 0, len(lines))
	for _, line := range lines {
		keys, desc, _ := strings.Cut(line, " ")
		rows = append(rows, [2]string{keys, strings.TrimSpace(desc)})
	}

	win := w.app.NewWindow("Keyboard Shortcuts")
	table := widget.NewTable(
		func() (int, int) { return len(rows) + 1, 2 },
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			isHeader := id.Row == 0
			switch {
			case isHeader && id.Col == 0:
				label.SetText("Shortcut")
			case isHeader:
				label.SetText("Description")
			default:
				label.SetText(rows[id.Row-1][id.Col])
			}
			label.TextStyle.Bold = isHeader
		},
	)
	table.SetColumnWidth(0, 120)
	table.SetColumnWidth(1, 380)
	win.SetContent(table)
	win.Resize(fyne.NewSize(500, 500))
	win.Show()
}
