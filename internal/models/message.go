package models

import "time"

type MessageType string

const (
	MessageMotivation     MessageType = "motivation"
	MessageProgressUpdate MessageType = "progress_update"
	MessageGoalCompletion MessageType = "goal_completion"
	MessageCheckIn        MessageType = "check_in"
	MessageUser           MessageType = "user_message"
	MessageAssistant      MessageType = "assistant_message"
	MessageCustom         MessageType = "custom"
)

// MessageHistory is an append-only log entry: the audit trail of every
// delivered notification and conversation turn, and the hydration
// source for the conversational context cache.
type MessageHistory struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"user_id"`
	MessageText string      `json:"message_text"`
	MessageType MessageType `json:"message_type"`
	CreatedAt   time.Time   `json:"created_at"`
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn lives only inside the context cache; it is
// reconstructed from MessageHistory rows on hydration.
type ConversationTurn struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// TurnRole maps a persisted message type onto a conversation role.
// Only the user's own messages read as "user"; every bot-authored
// entry conditions the model as assistant context.
func TurnRole(t MessageType) Role {
	if t == MessageUser {
		return RoleUser
	}
	return RoleAssistant
}
