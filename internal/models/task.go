package models

import "time"

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusCompleted
}

type Task struct {
	ID           string
	UserID       string
	Title        string
	Description  string
	Priority     string
	Status       string
	StartTime    time.Time
	EndTime      time.Time
	Location     *Location
	LocationName string
	Photo        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
