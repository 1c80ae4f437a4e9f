package taskclock

import (
	"strings"
	"time"
)

// WireLayout is the backend timestamp format: ISO-8601 date and time
// with no offset, interpreted in local time.
const WireLayout = "2006-01-02T15:04:05"

// Older backend rows use a space separator or a bare date.
var wireLayouts = []string{
	WireLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	DateKeyLayout,
}

// ParseWire parses a backend timestamp string. Malformed input yields
// ok=false and a zero instant; callers render it as "-" and filters
// skip it, so bad upstream data never crashes a view.
func ParseWire(s string) (time.Time, bool) {
	t, _, ok := ParseWireClock(s)
	return t, ok
}

// ParseWireClock parses like ParseWire and additionally reports
// whether the input carried a time of day. A bare date parses to
// midnight with hasClock=false; callers that need a real clock fill
// one in with DefaultClock.
func ParseWireClock(s string) (t time.Time, hasClock, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, false
	}
	for _, layout := range wireLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, layout != DateKeyLayout, true
		}
	}
	return time.Time{}, false, false
}

func FormatWire(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(WireLayout)
}
