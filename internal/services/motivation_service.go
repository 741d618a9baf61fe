package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/EricStrohmaier/motivations-bot/internal/models"
)

// DefaultMotivationMessages seeds a profile when the user resets their
// custom messages.
var DefaultMotivationMessages = []string{
	"Nothing is as important as you create your music of the future.",
	"You are never too late. As a matter of fact, you are always on time in your life. Things always happen in the right place with perfect timing.",
	"You have all the time in the world to finish your track.",
	"Leaving your legacy is the most important mission in your life.",
	"Being creative in a moment is what you like.",
	"When you do music you forget about time and space because you love it.",
	"Do one more track for Mom. She likes listening to my tracks and always appreciates it.",
	"Your music should look like you in your perfect outfits every day creative and outstanding. Your catalog of music will be like your wardrobe. People will judge you but also understand you by your music and your work.",
}

var motivationEmojis = []string{"✨", "🌟", "💪", "🚀", "🎯", "⭐", "🌈", "💫"}

// MotivationService produces motivation texts: a random custom message
// when the user keeps any, an AI-generated one otherwise.
type MotivationService struct {
	completer Completer
}

func NewMotivationService(completer Completer) *MotivationService {
	return &MotivationService{completer: completer}
}

func (s *MotivationService) MotivationMessage(ctx context.Context, user *models.UserProfile) (string, error) {
	if len(user.CustomMotivationMessages) > 0 {
		return user.CustomMotivationMessages[rand.Intn(len(user.CustomMotivationMessages))], nil
	}

	response, err := s.completer.Complete(ctx, motivationPrompt(user))
	if err != nil {
		return "", fmt.Errorf("generate motivation: %w", err)
	}

	emoji := motivationEmojis[rand.Intn(len(motivationEmojis))]
	return strings.TrimSpace(response) + " " + emoji, nil
}

func motivationPrompt(user *models.UserProfile) string {
	goals := make([]string, 0, len(user.Goals))
	for _, goal := range user.Goals {
		goals = append(goals, goal.Text)
	}

	return fmt.Sprintf(`Create an encouraging and motivational message for someone working on these goals:
- %s

The message should:
1. Be personal and empathetic
2. Reference specific goals they're working on
3. Acknowledge the challenges they might face
4. Provide specific encouragement related to their goals
5. End with an actionable step or thought

Keep the tone positive, energetic, and forward-looking. Make it feel like it's coming from a supportive friend who really understands their journey.

Keep responses concise. Short messages are better than long ones.`,
		strings.Join(goals, "\n- "))
}
