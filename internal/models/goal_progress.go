package models

import "time"

type GoalStatus string

const (
	StatusActive    GoalStatus = "active"
	StatusCompleted GoalStatus = "completed"
	StatusAbandoned GoalStatus = "abandoned"
)

// GoalProgress is an append-only record keyed by user id. The goal text
// is copied, not referenced: the record outlives the goal it describes.
type GoalProgress struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	Goal           string     `json:"goal"`
	Status         GoalStatus `json:"status"`
	StartDate      time.Time  `json:"start_date"`
	CompletionDate *time.Time `json:"completion_date,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}
