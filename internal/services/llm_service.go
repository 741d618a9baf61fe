package services

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
)

// Completer is the generative backend boundary: one prompt in, one
// text out. The services own all context assembly.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// LLMService wraps the Anthropic model behind the Completer contract.
type LLMService struct {
	model       llms.Model
	maxTokens   int
	temperature float64
}

func NewLLMService(apiKey, model string) (*LLMService, error) {
	llm, err := anthropic.New(
		anthropic.WithToken(apiKey),
		anthropic.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create anthropic client: %w", err)
	}
	return &LLMService{
		model:       llm,
		maxTokens:   400,
		temperature: 0.7,
	}, nil
}

func (s *LLMService) Complete(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, s.model, prompt,
		llms.WithMaxTokens(s.maxTokens),
		llms.WithTemperature(s.temperature),
	)
}
