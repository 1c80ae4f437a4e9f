// Package taskclock normalizes task time windows and derives the
// calendar keys used to place tasks in day, week and hour views.
package taskclock

import (
	"errors"
	"time"
)

const DateKeyLayout = "2006-01-02"

var ErrEndBeforeStart = errors.New("end time is not after start time")

// RolloverPolicy decides what happens when an end time lands at or
// before its start time. The mobile pickers produce this whenever a
// task crosses midnight: the user picks an end clock time earlier
// than the start clock time on the same calendar date.
type RolloverPolicy int

const (
	// RollForward moves the end one day ahead when the end clock
	// time is earlier than the start clock time on the same date.
	RollForward RolloverPolicy = iota
	// Reject fails every end <= start pair with ErrEndBeforeStart.
	Reject
)

func ParseRolloverPolicy(s string) (RolloverPolicy, bool) {
	switch s {
	case "roll", "":
		return RollForward, true
	case "reject":
		return Reject, true
	}
	return RollForward, false
}

// Normalize validates a raw (start, end) pair. A well-ordered pair is
// returned unchanged. The midnight rollover applies only when both
// values share a calendar date and the end clock time is numerically
// earlier than the start clock time.
func Normalize(start, end time.Time, policy RolloverPolicy) (time.Time, time.Time, error) {
	if start.IsZero() || end.IsZero() {
		return time.Time{}, time.Time{}, ErrEndBeforeStart
	}
	if end.After(start) {
		return start, end, nil
	}
	if policy == RollForward && sameDate(start, end) && clockBefore(end, start) {
		return start, end.AddDate(0, 0, 1), nil
	}
	return time.Time{}, time.Time{}, ErrEndBeforeStart
}

// Combine merges a picked calendar date with a separately picked time
// of day, as produced by the two-step date-then-time picker flow.
func Combine(date, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, date.Location())
}

// DefaultClock fills in the time of day for date-only input, using the
// current moment truncated to the minute.
func DefaultClock(date, now time.Time) time.Time {
	return Combine(date, now.Truncate(time.Minute))
}

// DateKey returns the local-time calendar key used to match a task to
// a calendar cell.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// HourBucket returns the local hour, for hourly timeline placement.
func HourBucket(t time.Time) int {
	return t.Hour()
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func clockBefore(a, b time.Time) bool {
	ah, am, as := a.Clock()
	bh, bm, bs := b.Clock()
	if ah != bh {
		return ah < bh
	}
	if am != bm {
		return am < bm
	}
	return as < bs
}
