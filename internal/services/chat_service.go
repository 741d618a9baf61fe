package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/EricStrohmaier/motivations-bot/internal/models"
)

const chatFallbackText = "Sorry, I had trouble processing that. Please try again."

type userReader interface {
	GetUser(ctx context.Context, userID int64) (*models.UserProfile, error)
}

type historyAppender interface {
	AppendMessage(ctx context.Context, userID int64, text string, messageType models.MessageType) error
}

type conversationContext interface {
	Window(ctx context.Context, userID int64) ([]models.ConversationTurn, error)
	Append(ctx context.Context, userID int64, turn models.ConversationTurn) error
}

// ChatService handles inbound free-text messages: it conditions the
// generative backend on the user's goals and recent conversation
// window, then records both sides of the exchange.
type ChatService struct {
	users     userReader
	history   historyAppender
	contexts  conversationContext
	completer Completer
}

func NewChatService(
	users userReader,
	history historyAppender,
	contexts conversationContext,
	completer Completer,
) *ChatService {
	return &ChatService{
		users:     users,
		history:   history,
		contexts:  contexts,
		completer: completer,
	}
}

// Reply produces the assistant's answer to an inbound message. A
// generative-backend failure results in a fallback text, never an
// error: chat always answers something.
func (s *ChatService) Reply(ctx context.Context, userID int64, text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ErrInvalidInput
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	window, err := s.contexts.Window(ctx, userID)
	if err != nil {
		// A cold cache without history is still answerable.
		log.Printf("chat: context window for user %d unavailable: %v", userID, err)
		window = nil
	}

	now := time.Now().UTC()
	userTurn := models.ConversationTurn{Role: models.RoleUser, Text: trimmed, Timestamp: now}
	if err := s.contexts.Append(ctx, userID, userTurn); err != nil {
		log.Printf("chat: context append for user %d failed: %v", userID, err)
	}
	if err := s.history.AppendMessage(ctx, userID, trimmed, models.MessageUser); err != nil {
		log.Printf("chat: history append for user %d failed: %v", userID, err)
	}

	response, err := s.completer.Complete(ctx, contextualPrompt(user, window, trimmed))
	if err != nil {
		log.Printf("chat: completion for user %d failed: %v", userID, err)
		return chatFallbackText, nil
	}
	response = strings.TrimSpace(response)

	assistantTurn := models.ConversationTurn{Role: models.RoleAssistant, Text: response, Timestamp: time.Now().UTC()}
	if err := s.contexts.Append(ctx, userID, assistantTurn); err != nil {
		log.Printf("chat: context append for user %d failed: %v", userID, err)
	}
	if err := s.history.AppendMessage(ctx, userID, response, models.MessageAssistant); err != nil {
		log.Printf("chat: history append for user %d failed: %v", userID, err)
	}

	return response, nil
}

func contextualPrompt(user *models.UserProfile, window []models.ConversationTurn, message string) string {
	var b strings.Builder

	b.WriteString("You are a motivational AI assistant. You have an ongoing conversation with a user who has the following context:\n\n")

	if len(user.Goals) > 0 {
		b.WriteString("Their current goals are:\n")
		for _, goal := range user.Goals {
			b.WriteString("- " + goal.Text)
			if goal.Deadline != nil {
				b.WriteString(fmt.Sprintf(" (due: %s)", goal.Deadline.Format("2006-01-02")))
			}
			b.WriteString("\n")
		}
	} else {
		b.WriteString("They haven't set any specific goals yet.\n")
	}

	if len(window) > 0 {
		b.WriteString("\nRecent conversation:\n")
		for _, turn := range window {
			b.WriteString(fmt.Sprintf("%s: %s\n", turn.Role, turn.Text))
		}
	}

	b.WriteString(fmt.Sprintf("\nThe user's message is: %q\n\n", message))
	b.WriteString(`Respond in a way that addresses their immediate question or comment.

Keep responses concise. If they seem to be struggling or frustrated, offer specific encouragement related to their goals.
Short messages are better than long ones.`)

	return b.String()
}
