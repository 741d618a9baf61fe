package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/EricStrohmaier/motivations-bot/internal/goalparse"
	"github.com/EricStrohmaier/motivations-bot/internal/models"
)

type userStore interface {
	GetUser(ctx context.Context, userID int64) (*models.UserProfile, error)
	SaveUser(ctx context.Context, profile *models.UserProfile) error
}

type progressRecorder interface {
	SaveGoalProgress(ctx context.Context, userID int64, goal string, status models.GoalStatus, notes string) error
	GetGoalProgress(ctx context.Context, userID int64) ([]models.GoalProgress, error)
}

type GoalService struct {
	users    userStore
	progress progressRecorder
	history  historyAppender
}

func NewGoalService(users userStore, progress progressRecorder, history historyAppender) *GoalService {
	return &GoalService{users: users, progress: progress, history: history}
}

// AddGoal parses the free-form text for an optional deadline, attaches
// a fresh id and records the goal as active.
func (s *GoalService) AddGoal(ctx context.Context, userID int64, text string) (*models.Goal, error) {
	if text == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	goalText, deadline := goalparse.Parse(text, time.Now())
	if goalText == "" {
		return nil, ErrInvalidInput
	}

	goal := models.Goal{
		ID:        uuid.New(),
		Text:      goalText,
		Priority:  models.PriorityMedium,
		Deadline:  deadline,
		CreatedAt: time.Now().UTC(),
	}
	user.Goals = append(user.Goals, goal)

	if err := s.users.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("save user %d: %w", userID, err)
	}
	if err := s.progress.SaveGoalProgress(ctx, userID, goal.Text, models.StatusActive, ""); err != nil {
		return nil, fmt.Errorf("record goal progress: %w", err)
	}

	return &goal, nil
}

func (s *GoalService) ListGoals(ctx context.Context, userID int64) ([]models.Goal, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Goals, nil
}

// CompleteGoal marks the goal done: emits the completion progress
// record, removes the goal from the profile and logs the celebration.
func (s *GoalService) CompleteGoal(ctx context.Context, userID int64, goalID uuid.UUID) (*models.Goal, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	goal, ok := user.GoalByID(goalID)
	if !ok {
		return nil, ErrGoalNotFound
	}

	if err := s.progress.SaveGoalProgress(ctx, userID, goal.Text, models.StatusCompleted, "Completed via bot command"); err != nil {
		return nil, fmt.Errorf("record goal completion: %w", err)
	}

	user.RemoveGoal(goalID)
	if err := s.users.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("save user %d: %w", userID, err)
	}

	completionText := fmt.Sprintf("🎉 Congratulations! You've completed your goal: %q!", goal.Text)
	if err := s.history.AppendMessage(ctx, userID, completionText, models.MessageGoalCompletion); err != nil {
		return nil, fmt.Errorf("log completion: %w", err)
	}

	return &goal, nil
}

func (s *GoalService) GetProgress(ctx context.Context, userID int64) ([]models.GoalProgress, error) {
	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.progress.GetGoalProgress(ctx, userID)
}

func (s *GoalService) getUser(ctx context.Context, userID int64) (*models.UserProfile, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
