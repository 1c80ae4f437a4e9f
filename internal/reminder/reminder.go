// Package reminder turns a reminder selection into an absolute trigger
// instant and manages pending notification schedules.
package reminder

import (
	"errors"
	"time"
)

var (
	ErrNotInFuture   = errors.New("reminder is not in the future")
	ErrUnknownOffset = errors.New("unknown reminder offset")
)

type Kind int

const (
	None Kind = iota
	FixedOffset
	Custom
)

// Selection is what the user picked on the add-task form: nothing, one
// of the fixed offsets before the task's end, or an explicit instant.
type Selection struct {
	Kind   Kind
	Offset time.Duration
	At     time.Time
}

// Offsets are the supported fixed durations subtracted from a task's
// end time.
var Offsets = []time.Duration{
	5 * time.Minute,
	15 * time.Minute,
	30 * time.Minute,
	time.Hour,
	24 * time.Hour,
}

// OffsetFromMinutes maps a wire offset to a supported duration.
func OffsetFromMinutes(minutes int) (time.Duration, bool) {
	d := time.Duration(minutes) * time.Minute
	for _, offset := range Offsets {
		if d == offset {
			return d, true
		}
	}
	return 0, false
}

// Resolve computes the absolute instant a reminder should fire. A None
// selection resolves to a zero instant with no error. Every non-None
// result must lie strictly after now, otherwise ErrNotInFuture is
// returned; callers treat that as a prompt to pick a different option,
// not as a reason to abandon the task itself.
func Resolve(end time.Time, sel Selection, now time.Time) (time.Time, error) {
	var trigger time.Time
	switch sel.Kind {
	case None:
		return time.Time{}, nil
	case FixedOffset:
		if _, ok := OffsetFromMinutes(int(sel.Offset / time.Minute)); !ok {
			return time.Time{}, ErrUnknownOffset
		}
		trigger = end.Add(-sel.Offset)
	case Custom:
		trigger = sel.At
	default:
		return time.Time{}, ErrUnknownOffset
	}

	if !trigger.After(now) {
		return time.Time{}, ErrNotInFuture
	}
	return trigger, nil
}
