package valuefmt

import (
	"strconv"
	"strings"
	"time"
)

// DefaultTimestampFormat is the strftime layout used by the info overlay.
const DefaultTimestampFormat = "%Y-%m-%d %H:%M:%S"

// FormatTimestamp formats a Unix timestamp (seconds, fractional allowed)
// in local time using a strftime-style layout. Unknown directives are
// copied through unchanged.
func FormatTimestamp(tstamp float64, formatspec string) string {
	sec := int64(tstamp)
	nsec := int64((tstamp - float64(sec)) * 1e9)
	return FormatTime(time.Unix(sec, nsec), formatspec)
}

// FormatTime formats t using a strftime-style layout.
func FormatTime(t time.Time, formatspec string) string {
	var b strings.Builder
	for i := 0; i < len(formatspec); i++ {
		c := formatspec[i]
		if c != '%' || i+1 == len(formatspec) {
			b.WriteByte(c)
			continue
		}
		i++
		switch formatspec[i] {
		case 'Y':
			b.WriteString(strconv.Itoa(t.Year()))
		case 'y':
			b.WriteString(t.Format("06"))
		case 'm':
			b.WriteString(t.Format("01"))
		case 'd':
			b.WriteString(t.Format("02"))
		case 'H':
			b.WriteString(t.Format("15"))
		case 'I':
			b.WriteString(t.Format("03"))
		case 'M':
			b.WriteString(t.Format("04"))
		case 'S':
			b.WriteString(t.Format("05"))
		case 'p':
			b.WriteString(t.Format("PM"))
		case 'b':
			b.WriteString(t.Format("Jan"))
		case 'B':
			b.WriteString(t.Format("January"))
		case 'a':
			b.WriteString(t.Format("Mon"))
		case 'A':
			b.WriteString(t.Format("Monday"))
		case 'j':
			b.WriteString(t.Format("002"))
		case 'Z':
			b.WriteString(t.Format("MST"))
		case 'z':
			b.WriteString(t.Format("-0700"))
		case 's':
			b.WriteString(strconv.FormatInt(t.Unix(), 10))
		case '%':
			b.WriteByte('%')
		default:
			b.WriteByte('%')
			b.WriteByte(formatspec[i])
		}
	}
	return b.String()
}
