package linking

import "context"

// Spotter detects entity mentions in text.
type Spotter interface {
	Detect(ctx context.Context, text string) ([]Span, error)
}

// Retriever fetches candidate entities for a single mention.
type Retriever interface {
	Search(ctx context.Context, span Span) ([]Candidate, error)
}

// Reranker orders the candidates for each span by how well they fit the
// mention in context.
type Reranker interface {
	Rerank(ctx context.Context, text string, spans []Span,
		candidates [][]Candidate, textMatchOnly bool) (*Result, error)
}

// Linker runs the linking pipeline: mention detection, candidate
// retrieval, reranking.
type Linker struct {
	spotter   Spotter
	retriever Retriever
	reranker  Reranker
}

func New(sp Spotter, r Retriever, rr Reranker) *Linker {
	return &Linker{spotter: sp, retriever: r, reranker: rr}
}

// DetectSpans finds entity mentions in text.
func (l *Linker) DetectSpans(ctx context.Context, text string) ([]Span, error) {
	spans, err := l.spotter.Detect(ctx, text)
	if err != nil {
		return nil, err
	}
	if spans == nil {
		spans = make([]Span, 0)
	}
	return spans, nil
}

// FetchCandidates retrieves candidate entities for each span. The outer
// slice is parallel to spans.
func (l *Linker) FetchCandidates(ctx context.Context, text string,
	spans []Span) ([][]Candidate, error) {

	candidates := make([][]Candidate, 0, len(spans))
	for _, span := range spans {
		cands, err := l.retriever.Search(ctx, span)
		if err != nil {
			return nil, err
		}
		if cands == nil {
			cands = make([]Candidate, 0)
		}
		candidates = append(candidates, cands)
	}
	return candidates, nil
}

// Rerank scores and sorts the candidates for each span.
func (l *Linker) Rerank(ctx context.Context, text string, spans []Span,
	candidates [][]Candidate, textMatchOnly bool) (*Result, error) {

	return l.reranker.Rerank(ctx, text, spans, candidates, textMatchOnly)
}

// Link runs the full pipeline on text. With textMatchOnly set, candidates
// keep their retrieval order and get a constant score.
func (l *Linker) Link(ctx context.Context, text string,
	textMatchOnly bool) (*Result, error) {

	spans, err := l.DetectSpans(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(spans) == 0 {
		return NewResult(text), nil
	}
	candidates, err := l.FetchCandidates(ctx, text, spans)
	if err != nil {
		return nil, err
	}
	return l.Rerank(ctx, text, spans, candidates, textMatchOnly)
}
