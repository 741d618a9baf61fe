package services

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/EricStrohmaier/motivations-bot/internal/models"
)

type stubUserStore struct {
	mu      sync.Mutex
	users   map[int64]*models.UserProfile
	getErr  error
	saveErr error
	saves   int
}

func newStubUserStore(profiles ...*models.UserProfile) *stubUserStore {
	s := &stubUserStore{users: make(map[int64]*models.UserProfile)}
	for _, p := range profiles {
		s.users[p.UserID] = p
	}
	return s
}

func (s *stubUserStore) GetUser(ctx context.Context, userID int64) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	user, ok := s.users[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (s *stubUserStore) SaveUser(ctx context.Context, profile *models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	clone := *profile
	s.users[profile.UserID] = &clone
	s.saves++
	return nil
}

type progressRecord struct {
	userID int64
	goal   string
	status models.GoalStatus
	notes  string
}

type stubProgress struct {
	records []progressRecord
	rows    []models.GoalProgress
	err     error
}

func (s *stubProgress) SaveGoalProgress(ctx context.Context, userID int64, goal string, status models.GoalStatus, notes string) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, progressRecord{userID, goal, status, notes})
	return nil
}

func (s *stubProgress) GetGoalProgress(ctx context.Context, userID int64) ([]models.GoalProgress, error) {
	return s.rows, s.err
}

type historyRecord struct {
	userID      int64
	text        string
	messageType models.MessageType
}

type stubHistory struct {
	err     error
	entries []historyRecord
}

func (s *stubHistory) AppendMessage(ctx context.Context, userID int64, text string, messageType models.MessageType) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, historyRecord{userID, text, messageType})
	return nil
}

type stubCompleter struct {
	response string
	err      error
	prompts  []string
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

type stubContexts struct {
	windowErr error
	appendErr error
	window    []models.ConversationTurn
	appended  []models.ConversationTurn
}

func (s *stubContexts) Window(ctx context.Context, userID int64) ([]models.ConversationTurn, error) {
	if s.windowErr != nil {
		return nil, s.windowErr
	}
	return s.window, nil
}

func (s *stubContexts) Append(ctx context.Context, userID int64, turn models.ConversationTurn) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.appended = append(s.appended, turn)
	return nil
}
