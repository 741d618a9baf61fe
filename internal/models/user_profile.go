package models

import (
	"time"

	"github.com/google/uuid"
)

type GoalPriority string

const (
	PriorityHigh   GoalPriority = "high"
	PriorityMedium GoalPriority = "medium"
	PriorityLow    GoalPriority = "low"
)

// Goal is owned by its UserProfile and stored inline on the users row.
// The ID is assigned at creation so that completion and deadline dedup
// never depend on the goal's position in the slice.
type Goal struct {
	ID        uuid.UUID    `json:"id"`
	Text      string       `json:"text"`
	Priority  GoalPriority `json:"priority"`
	Deadline  *time.Time   `json:"deadline,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

type UserProfile struct {
	UserID                   int64     `json:"user_id"`
	Username                 string    `json:"username"`
	Goals                    []Goal    `json:"goals"`
	MotivationFrequency      int       `json:"motivation_frequency"`
	Timezone                 string    `json:"timezone"`
	CheckInEnabled           bool      `json:"check_in_enabled"`
	LastMessageDate          time.Time `json:"last_message_date"`
	CustomMotivationMessages []string  `json:"custom_motivation_messages"`
}

// NewUserProfile returns a profile with the defaults applied on first
// contact: UTC, check-ins on, motivation every second day.
func NewUserProfile(userID int64, username string) *UserProfile {
	return &UserProfile{
		UserID:              userID,
		Username:            username,
		Goals:               []Goal{},
		MotivationFrequency: 2,
		Timezone:            "UTC",
		CheckInEnabled:      true,
		LastMessageDate:     time.Now().UTC(),
	}
}

// Location resolves the profile's IANA timezone name. The name is
// validated when the user supplies it, so a failure here means the
// stored value has gone bad and the caller must skip the user.
func (p *UserProfile) Location() (*time.Location, error) {
	return time.LoadLocation(p.Timezone)
}

func (p *UserProfile) GoalByID(id uuid.UUID) (Goal, bool) {
	for _, g := range p.Goals {
		if g.ID == id {
			return g, true
		}
	}
	return Goal{}, false
}

// RemoveGoal deletes the goal with the given id, reporting whether it
// was present.
func (p *UserProfile) RemoveGoal(id uuid.UUID) bool {
	for i, g := range p.Goals {
		if g.ID == id {
			p.Goals = append(p.Goals[:i], p.Goals[i+1:]...)
			return true
		}
	}
	return false
}
