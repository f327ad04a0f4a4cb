package llms

import (
	"context"
	"errors"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GoogleAI is an LLM backed by the Google AI generative API.
type GoogleAI struct {
	client *genai.Client
	model  string
}

func NewGoogleAI(ctx context.Context, apiKey, model string) (*GoogleAI, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GoogleAI{client: client, model: model}, nil
}

func (g *GoogleAI) Close() error {
	return g.client.Close()
}

// SendMessage sends prompt with an optional system instruction and
// returns the concatenated text parts of the first candidate.
// Generation is deterministic (temperature 0, single candidate).
func (g *GoogleAI) SendMessage(ctx context.Context, prompt, systemPrompt string) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetCandidateCount(1)
	model.SetTemperature(0)
	if systemPrompt != "" {
		model.SystemInstruction = &genai.Content{
			Role:  "system",
			Parts: []genai.Part{genai.Text(systemPrompt)},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("llms: empty completion")
	}
	var output string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			output += string(text)
		}
	}
	return output, nil
}
