package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/EricStrohmaier/motivations-bot/internal/models"
)

// ProfileService owns user setup and preference changes. The timezone
// invariant lives here: a zone name is validated the moment the user
// supplies it, so scheduling can assume stored zones resolve.
type ProfileService struct {
	users userStore
}

func NewProfileService(users userStore) *ProfileService {
	return &ProfileService{users: users}
}

// Setup creates or refreshes the profile with first-contact defaults.
func (s *ProfileService) Setup(ctx context.Context, userID int64, username string) (*models.UserProfile, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		user = models.NewUserProfile(userID, username)
	}
	if username != "" {
		user.Username = username
	}
	if err := s.users.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("save user %d: %w", userID, err)
	}
	return user, nil
}

func (s *ProfileService) Get(ctx context.Context, userID int64) (*models.UserProfile, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// SetTimezone rejects names the tz database does not know.
func (s *ProfileService) SetTimezone(ctx context.Context, userID int64, timezone string) error {
	if _, err := time.LoadLocation(timezone); err != nil || timezone == "" {
		return ErrInvalidTimezone
	}

	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	user.Timezone = timezone
	return s.users.SaveUser(ctx, user)
}

// SetCheckIns toggles the daily check-in and motivation schedule.
// Deadline reminders are unaffected.
func (s *ProfileService) SetCheckIns(ctx context.Context, userID int64, enabled bool) error {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	user.CheckInEnabled = enabled
	return s.users.SaveUser(ctx, user)
}

// AddCustomMessage appends to the user's motivation rotation.
func (s *ProfileService) AddCustomMessage(ctx context.Context, userID int64, message string) error {
	if message == "" {
		return ErrInvalidInput
	}
	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	user.CustomMotivationMessages = append(user.CustomMotivationMessages, message)
	return s.users.SaveUser(ctx, user)
}

// ClearCustomMessages empties the rotation; motivation falls back to
// AI generation.
func (s *ProfileService) ClearCustomMessages(ctx context.Context, userID int64) error {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	user.CustomMotivationMessages = []string{}
	return s.users.SaveUser(ctx, user)
}

// ResetCustomMessages restores the default message list.
func (s *ProfileService) ResetCustomMessages(ctx context.Context, userID int64) error {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	user.CustomMotivationMessages = append([]string(nil), DefaultMotivationMessages...)
	return s.users.SaveUser(ctx, user)
}
