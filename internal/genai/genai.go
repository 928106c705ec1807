// Package genai wraps the generative text service used for summaries,
// chat, and translation. Callers depend on the small interfaces here so
// tests can substitute fakes.
package genai

import (
	"context"

	"github.com/nexusai/newsnexus/internal/domain"
)

type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type Chatter interface {
	Chat(ctx context.Context, history []domain.ChatMessage, message, articleContext string) (string, error)
}
