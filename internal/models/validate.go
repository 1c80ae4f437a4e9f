package models

import "math"

// ValidationError carries the first violated rule. Callers surface the
// message to the user one rule at a time.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Validate gates a task before it reaches storage. Times are expected
// to be normalized already, so end <= start here is a hard failure
// rather than a rollover candidate.
func (t *Task) Validate() error {
	if t.Title == "" {
		return newValidationError("title", "title is required")
	}
	if t.Description == "" {
		return newValidationError("description", "description is required")
	}
	if !ValidPriority(t.Priority) {
		return newValidationError("priority", "priority must be one of low, medium, high")
	}
	if t.StartTime.IsZero() {
		return newValidationError("start_time", "start time is required")
	}
	if t.EndTime.IsZero() {
		return newValidationError("end_time", "end time is required")
	}
	if !t.EndTime.After(t.StartTime) {
		return newValidationError("end_time", "end time must be after start time")
	}
	if t.Location != nil {
		if err := t.Location.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (l *Location) validate() error {
	if !finite(l.Latitude) || l.Latitude < -90 || l.Latitude > 90 {
		return newValidationError("location", "latitude must be between -90 and 90")
	}
	if !finite(l.Longitude) || l.Longitude < -180 || l.Longitude > 180 {
		return newValidationError("location", "longitude must be between -180 and 180")
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
