// Clients for chat-completion language models.
package llms

import "context"

// LLM sends a single prompt and returns the completion text.
type LLM interface {
	SendMessage(ctx context.Context, prompt, systemPrompt string) (string, error)
}
