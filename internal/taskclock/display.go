package taskclock

import (
	"fmt"
	"time"
)

// Locale selects the display language and the week start. It is an
// explicit parameter everywhere rather than process-global state.
type Locale string

const (
	LocaleID Locale = "id"
	LocaleEN Locale = "en"

	DefaultLocale = LocaleID
)

// Unparseable is rendered in place of a date the backend sent in a
// shape we could not parse.
const Unparseable = "-"

var monthsID = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatDate renders a human-readable date. Today, tomorrow and
// yesterday get relative names.
func FormatDate(t, now time.Time, locale Locale) string {
	if t.IsZero() {
		return Unparseable
	}

	switch {
	case sameDate(t, now):
		if locale == LocaleEN {
			return "Today"
		}
		return "Hari ini"
	case sameDate(t, now.AddDate(0, 0, 1)):
		if locale == LocaleEN {
			return "Tomorrow"
		}
		return "Besok"
	case sameDate(t, now.AddDate(0, 0, -1)):
		if locale == LocaleEN {
			return "Yesterday"
		}
		return "Kemarin"
	}

	if locale == LocaleEN {
		return t.Format("02 January 2006")
	}
	return fmt.Sprintf("%02d %s %d", t.Day(), monthsID[t.Month()-1], t.Year())
}

// FormatClock renders the time of day as HH:mm, or "-" for a zero
// instant.
func FormatClock(t time.Time) string {
	if t.IsZero() {
		return Unparseable
	}
	return t.Format("15:04")
}

// WeekStart is Monday for the Indonesian locale and Sunday otherwise.
func WeekStart(locale Locale) time.Weekday {
	if locale == LocaleID {
		return time.Monday
	}
	return time.Sunday
}

// WeekRange returns the first and last calendar day, both at midnight,
// of the week containing t.
func WeekRange(t time.Time, locale Locale) (time.Time, time.Time) {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())

	offset := int(day.Weekday()) - int(WeekStart(locale))
	if offset < 0 {
		offset += 7
	}
	start := day.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}
