package models

import "time"

type User struct {
	ID        string
	Email     string
	Password  string
	Name      string
	Phone     string
	Gender    string
	BirthDate *time.Time
	Photo     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
