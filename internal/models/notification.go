package models

import "time"

type Notification struct {
	ID        string
	UserID    string
	TaskID    string
	Title     string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}

// Schedule is a pending reminder delivery. Its ID doubles as the
// opaque handle returned by the scheduler, kept so a deleted task can
// still cancel an undelivered reminder.
type Schedule struct {
	ID          string
	TaskID      string
	UserID      string
	Title       string
	Body        string
	TriggerAt   time.Time
	DeliveredAt *time.Time
	CreatedAt   time.Time
}
