// Package chat keeps the short-term conversational state that makes
// AI replies coherent across turns without replaying full history.
package chat

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/EricStrohmaier/motivations-bot/internal/models"
)

type HistoryReader interface {
	GetRecentMessages(ctx context.Context, userID int64, limit int) ([]models.MessageHistory, error)
}

type userWindow struct {
	mu       sync.Mutex
	hydrated bool
	turns    []models.ConversationTurn
}

// ContextCache holds a bounded window of recent conversation turns per
// user. Windows hydrate lazily from message history on first access and
// are trimmed to the last K turns on every append. The set of tracked
// users is itself bounded by an LRU: evicting a user drops the whole
// window, and the next access re-hydrates it from persistence.
type ContextCache struct {
	history    HistoryReader
	windowSize int
	users      *lru.Cache[int64, *userWindow]
}

func NewContextCache(history HistoryReader, windowSize, maxUsers int) (*ContextCache, error) {
	if windowSize < 1 {
		return nil, fmt.Errorf("window size must be positive, got %d", windowSize)
	}
	users, err := lru.New[int64, *userWindow](maxUsers)
	if err != nil {
		return nil, fmt.Errorf("create user cache: %w", err)
	}
	return &ContextCache{
		history:    history,
		windowSize: windowSize,
		users:      users,
	}, nil
}

// Window returns the user's recent turns, oldest first, never more than
// the configured window size.
func (c *ContextCache) Window(ctx context.Context, userID int64) ([]models.ConversationTurn, error) {
	w := c.window(userID)

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.hydrated {
		if err := c.hydrate(ctx, userID, w); err != nil {
			return nil, err
		}
	}

	out := make([]models.ConversationTurn, len(w.turns))
	copy(out, w.turns)
	return out, nil
}

// Append pushes a turn onto the user's window and drops the oldest
// entries beyond the window size. The window is hydrated first so that
// a cold append does not mask the persisted history.
func (c *ContextCache) Append(ctx context.Context, userID int64, turn models.ConversationTurn) error {
	w := c.window(userID)

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.hydrated {
		if err := c.hydrate(ctx, userID, w); err != nil {
			return err
		}
	}

	w.turns = append(w.turns, turn)
	if len(w.turns) > c.windowSize {
		w.turns = w.turns[len(w.turns)-c.windowSize:]
	}
	return nil
}

// TrackedUsers reports how many user windows are currently resident.
func (c *ContextCache) TrackedUsers() int {
	return c.users.Len()
}

func (c *ContextCache) window(userID int64) *userWindow {
	if w, ok := c.users.Get(userID); ok {
		return w
	}
	w := &userWindow{}
	// A concurrent add for the same user must share one window.
	if prev, ok, _ := c.users.PeekOrAdd(userID, w); ok {
		return prev
	}
	return w
}

// hydrate fills the window with the most recent persisted turns,
// oldest first. Caller holds w.mu.
func (c *ContextCache) hydrate(ctx context.Context, userID int64, w *userWindow) error {
	records, err := c.history.GetRecentMessages(ctx, userID, c.windowSize)
	if err != nil {
		return fmt.Errorf("hydrate context for user %d: %w", userID, err)
	}

	turns := make([]models.ConversationTurn, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		record := records[i]
		turns = append(turns, models.ConversationTurn{
			Role:      models.TurnRole(record.MessageType),
			Text:      record.MessageText,
			Timestamp: record.CreatedAt,
		})
	}
	w.turns = turns
	w.hydrated = true
	return nil
}
