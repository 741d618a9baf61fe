package repository

import (
	"context"

	"github.com/EricStrohmaier/motivations-bot/internal/models"
)

type MessageRepository struct {
	db DBTX
}

func NewMessageRepository(db DBTX) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) AppendMessage(
	ctx context.Context,
	userID int64,
	text string,
	messageType models.MessageType,
) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO message_history (user_id, message_text, message_type)
		VALUES ($1, $2, $3)
	`, userID, text, messageType)
	return err
}

// GetRecentMessages returns the newest rows first; callers that need
// chronological order reverse the slice themselves.
func (r *MessageRepository) GetRecentMessages(
	ctx context.Context,
	userID int64,
	limit int,
) ([]models.MessageHistory, error) {
	query := `
		SELECT id, user_id, message_text, message_type, created_at
		FROM message_history
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]models.MessageHistory, 0, limit)
	for rows.Next() {
		var message models.MessageHistory
		if err := rows.Scan(
			&message.ID,
			&message.UserID,
			&message.MessageText,
			&message.MessageType,
			&message.CreatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}
