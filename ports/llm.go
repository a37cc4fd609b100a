package ports

import "context"

// LLMClient abstracts a chat-completion endpoint.
type LLMClient interface {
	// ChatCompletion sends one prompt and returns the completion text.
	ChatCompletion(ctx context.Context, model string, prompt string, maxTokens int) (string, error)
}
