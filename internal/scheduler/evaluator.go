package scheduler

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/EricStrohmaier/motivations-bot/internal/models"
)

// Trigger names the finite set of conditions that can fire a message
// for a user at a given moment.
type Trigger string

const (
	TriggerMorningCheckIn Trigger = "morning_check_in"
	TriggerMotivation     Trigger = "motivation"
	TriggerEveningCheckIn Trigger = "evening_check_in"
	TriggerDeadline       Trigger = "deadline_reminder"
)

const (
	morningCheckInText = "🌅 Good morning! What's your smallest achievable goal for today?"
	eveningCheckInText = "🌙 Evening check-in! Did you manage to achieve your goals today?"
)

// Outbound is one message the evaluator decided to send. Deadline
// reminders carry the goal id so the dedup ledger can key on it; the
// motivation trigger leaves Text empty and lets the dispatcher resolve
// it (custom message or generated), keeping evaluation pure.
type Outbound struct {
	Kind   Trigger
	Type   models.MessageType
	Text   string
	GoalID uuid.UUID
}

// LocalizationError marks a user whose stored timezone no longer
// resolves. The poller logs it and skips the user for the tick.
type LocalizationError struct {
	UserID   int64
	Timezone string
	Err      error
}

func (e *LocalizationError) Error() string {
	return fmt.Sprintf("user %d: invalid timezone %q: %v", e.UserID, e.Timezone, e.Err)
}

func (e *LocalizationError) Unwrap() error { return e.Err }

// Evaluator decides, for one user and one instant, which triggers fire.
// It has no side effects; the poller dispatches and records whatever it
// returns.
type Evaluator struct {
	MorningHour int
	MiddayHour  int
	EveningHour int
}

func NewEvaluator(morningHour, middayHour, eveningHour int) *Evaluator {
	return &Evaluator{
		MorningHour: morningHour,
		MiddayHour:  middayHour,
		EveningHour: eveningHour,
	}
}

// Evaluate projects nowUTC into the user's timezone and collects every
// trigger whose exact-hour condition holds. Check-ins and motivation
// honor the user's opt-out; deadline reminders fire regardless of it.
func (e *Evaluator) Evaluate(user *models.UserProfile, nowUTC time.Time) ([]Outbound, error) {
	loc, err := user.Location()
	if err != nil {
		return nil, &LocalizationError{UserID: user.UserID, Timezone: user.Timezone, Err: err}
	}

	localNow := nowUTC.In(loc)
	localHour := localNow.Hour()

	var out []Outbound

	if user.CheckInEnabled {
		if localHour == e.MorningHour {
			out = append(out, Outbound{
				Kind: TriggerMorningCheckIn,
				Type: models.MessageCheckIn,
				Text: morningCheckInText,
			})
		}
		if localHour == e.MiddayHour {
			out = append(out, Outbound{
				Kind: TriggerMotivation,
				Type: models.MessageMotivation,
			})
		}
		if localHour == e.EveningHour {
			out = append(out, Outbound{
				Kind: TriggerEveningCheckIn,
				Type: models.MessageCheckIn,
				Text: eveningCheckInText,
			})
		}
	}

	for _, goal := range user.Goals {
		if goal.Deadline == nil {
			continue
		}
		days := DaysUntil(*goal.Deadline, nowUTC)
		if text, ok := ClassifyDeadline(days, localHour, goal.Text); ok {
			out = append(out, Outbound{
				Kind:   TriggerDeadline,
				Type:   models.MessageProgressUpdate,
				Text:   text,
				GoalID: goal.ID,
			})
		}
	}

	return out, nil
}

// DaysUntil is the ceiling of the distance to the deadline in days;
// negative once the deadline has passed.
func DaysUntil(deadline, now time.Time) int {
	return int(math.Ceil(deadline.Sub(now).Hours() / 24))
}

// HourBucket is the dedup-ledger key for one local calendar hour.
func HourBucket(nowUTC time.Time, loc *time.Location) string {
	return nowUTC.In(loc).Format("2006-01-02T15")
}
