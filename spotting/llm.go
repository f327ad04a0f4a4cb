package spotting

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/semantic-systems/dblplink-2.0/linking"
	"github.com/semantic-systems/dblplink-2.0/llms"
)

const spotSystemPrompt = "You are an information extraction assistant."

const spotPromptFormat = `Extract named entities from the following sentence and classify them into one of the following types: person, publication, venue.
Let the output be a JSON array of objects with fields 'label' and 'type'.
Sentence: %q
Entities:`

// Models often echo the instruction before answering; the last JSON array
// in the completion is the answer.
var jsonArrayRE = regexp.MustCompile(`(?s)\[\s*\{.*?\}\s*]`)

// LLMSpotter detects and types mentions with a language model.
type LLMSpotter struct {
	llm llms.LLM
}

func NewLLMSpotter(llm llms.LLM) *LLMSpotter {
	return &LLMSpotter{llm: llm}
}

func (s *LLMSpotter) Detect(ctx context.Context, text string) ([]linking.Span, error) {
	output, err := s.llm.SendMessage(ctx,
		fmt.Sprintf(spotPromptFormat, text), spotSystemPrompt)
	if err != nil {
		return nil, fmt.Errorf("span detection: %v", err)
	}
	return ParseSpans(output)
}

// ParseSpans extracts the span list from a model completion. No JSON
// array in the output means no mentions were found.
func ParseSpans(output string) ([]linking.Span, error) {
	matches := jsonArrayRE.FindAllString(output, -1)
	if len(matches) == 0 {
		return []linking.Span{}, nil
	}
	var spans []linking.Span
	if err := json.Unmarshal([]byte(matches[len(matches)-1]), &spans); err != nil {
		return nil, fmt.Errorf("span detection: malformed model output: %v", err)
	}
	return spans, nil
}
