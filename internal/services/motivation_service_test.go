package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/EricStrohmaier/motivations-bot/internal/models"
)

func TestMotivationPrefersCustomMessages(t *testing.T) {
	user := models.NewUserProfile(1, "taylor")
	user.CustomMotivationMessages = []string{"own words only"}
	completer := &stubCompleter{response: "generated"}
	svc := NewMotivationService(completer)

	msg, err := svc.MotivationMessage(context.Background(), user)
	if err != nil {
		t.Fatalf("MotivationMessage: %v", err)
	}
	if msg != "own words only" {
		t.Errorf("msg = %q", msg)
	}
	if len(completer.prompts) != 0 {
		t.Error("custom messages must not hit the generative backend")
	}
}

func TestMotivationGeneratesWhenNoCustomMessages(t *testing.T) {
	user := models.NewUserProfile(1, "taylor")
	user.Goals = []models.Goal{{Text: "finish the EP"}}
	completer := &stubCompleter{response: "You are closer than you think."}
	svc := NewMotivationService(completer)

	msg, err := svc.MotivationMessage(context.Background(), user)
	if err != nil {
		t.Fatalf("MotivationMessage: %v", err)
	}
	if !strings.HasPrefix(msg, "You are closer than you think.") {
		t.Errorf("msg = %q", msg)
	}
	// Generated messages carry a trailing emoji.
	if msg == "You are closer than you think." {
		t.Error("expected an emoji suffix on the generated message")
	}
	if len(completer.prompts) != 1 || !strings.Contains(completer.prompts[0], "finish the EP") {
		t.Errorf("prompt should mention the user's goals: %q", completer.prompts)
	}
}

func TestMotivationSurfacesGenerationFailure(t *testing.T) {
	svc := NewMotivationService(&stubCompleter{err: errors.New("model unavailable")})
	if _, err := svc.MotivationMessage(context.Background(), models.NewUserProfile(1, "t")); err == nil {
		t.Error("expected the generation failure to surface")
	}
}
