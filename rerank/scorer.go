// Candidate reranking against knowledge-graph evidence.
package rerank

import (
	"context"
	"fmt"
	"strings"

	"github.com/semantic-systems/dblplink-2.0/llms"
	"github.com/semantic-systems/dblplink-2.0/nlp"
)

// Scorer judges how well a candidate entity fits a mention, given the
// evidence lines from the entity's neighbourhood. It returns the score
// and the single best-supporting line.
type Scorer interface {
	Score(ctx context.Context, mention, doc, uri string,
		evidence []string) (float64, string, error)
}

const entailmentPromptFormat = `You are an assistant linking mentions to entities.
Document: %s
Mention: %s
Candidate Entity: %s
Entity Info: %s
Question: Does the mention belong to this entity? Answer: yes/no
Answer:`

// LLMScorer asks an entailment question per evidence line and averages
// the yes answers. The best line is the first one answered yes.
type LLMScorer struct {
	llm llms.LLM
}

func NewLLMScorer(llm llms.LLM) *LLMScorer {
	return &LLMScorer{llm: llm}
}

func (s *LLMScorer) Score(ctx context.Context, mention, doc, uri string,
	evidence []string) (float64, string, error) {

	if len(evidence) == 0 {
		return 0, "", nil
	}

	var yes float64
	best := evidence[0]
	haveBest := false
	for _, line := range evidence {
		prompt := fmt.Sprintf(entailmentPromptFormat,
			doc, mention, uri, line)
		answer, err := s.llm.SendMessage(ctx, prompt, "")
		if err != nil {
			return 0, "", fmt.Errorf("rerank: %v", err)
		}
		if isYes(answer) {
			yes++
			if !haveBest {
				best = line
				haveBest = true
			}
		}
	}
	return yes / float64(len(evidence)), best, nil
}

func isYes(answer string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "yes")
}

// OverlapScorer scores by token overlap (Jaccard) between the mention
// and the candidate's evidence. With Constant set, every candidate gets
// that fixed score, which is what the text-match-only API mode expects.
type OverlapScorer struct {
	Constant    float64
	UseConstant bool
}

// TextMatchScorer reproduces the text-match-only mode: all candidates
// keep their retrieval order under a constant -1 score.
func TextMatchScorer() OverlapScorer {
	return OverlapScorer{Constant: -1, UseConstant: true}
}

func (s OverlapScorer) Score(ctx context.Context, mention, doc, uri string,
	evidence []string) (float64, string, error) {

	if s.UseConstant {
		return s.Constant, "", nil
	}

	mtokens := tokenSet(mention)
	bestScore, best := 0.0, ""
	for _, line := range evidence {
		ltokens := tokenSet(line)
		if j := jaccard(mtokens, ltokens); j > bestScore {
			bestScore, best = j, line
		}
	}
	return bestScore, best, nil
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, token := range nlp.Tokenize(s) {
		set[strings.ToLower(token)] = true
	}
	return set
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	var common int
	for token := range a {
		if b[token] {
			common++
		}
	}
	return float64(common) / float64(len(a)+len(b)-common)
}
