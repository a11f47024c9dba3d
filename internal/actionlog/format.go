package actionlog

import (
	"fmt"
	"strings"
)

// DefaultFormat renders "<action> <target>" lines.
const DefaultFormat = `{} {}\n`

const (
	slotAction = iota
	slotTarget
)

type piece struct {
	lit  string
	slot int // -1 for literal text
}

// Format is a compiled two-slot line format. Slots are written "{}"
// (positional: action then target), "{action}" or "{target}". "{{" and
// "}}" are literal braces; \n, \t, \r and \\ are interpreted.
type Format struct {
	src    string
	pieces []piece
}

// String returns the source text.
func (f *Format) String() string { return f.src }

// ParseFormat compiles a line format.
func ParseFormat(src string) (*Format, error) {
	text := unescape(src)
	f := &Format{src: src}
	var lit strings.Builder
	next := slotAction
	flush := func() {
		if lit.Len() > 0 {
			f.pieces = append(f.pieces, piece{lit: lit.String(), slot: -1})
			lit.Reset()
		}
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '{' && i+1 < len(text) && text[i+1] == '{':
			lit.WriteByte('{')
			i++
		case c == '}' && i+1 < len(text) && text[i+1] == '}':
			lit.WriteByte('}')
			i++
		case c == '{':
			end := strings.IndexByte(text[i:], '}')
			if end < 0 {
				return nil, fmt.Errorf("format %q: unclosed '{'", src)
			}
			name := text[i+1 : i+end]
			var slot int
			switch name {
			case "":
				if next > slotTarget {
					return nil, fmt.Errorf("format %q: more than two positional slots", src)
				}
				slot = next
				next++
			case "action", "0":
				slot = slotAction
			case "target", "1":
				slot = slotTarget
			default:
				return nil, fmt.Errorf("format %q: unknown slot {%s}", src, name)
			}
			flush()
			f.pieces = append(f.pieces, piece{slot: slot})
			i += end
		case c == '}':
			return nil, fmt.Errorf("format %q: single '}'", src)
		default:
			lit.WriteByte(c)
		}
	}
	flush()
	return f, nil
}

// Render fills the slots for one entry.
func (f *Format) Render(e Entry) string {
	var b strings.Builder
	for _, p := range f.pieces {
		switch p.slot {
		case slotAction:
			b.WriteString(e.Action)
		case slotTarget:
			b.WriteString(e.Target)
		default:
			b.WriteString(p.lit)
		}
	}
	return b.String()
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
