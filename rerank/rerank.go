package rerank

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/semantic-systems/dblplink-2.0/linking"
	"github.com/semantic-systems/dblplink-2.0/storage"
)

// Fetcher retrieves the linearised one-hop neighbourhood of an entity.
type Fetcher interface {
	FetchNeighbourhood(ctx context.Context, uri string) ([]string, error)
}

// Reranker scores candidates against their knowledge-graph neighbourhood
// and sorts them per span. Candidates are scored concurrently, Workers at
// a time per span.
type Reranker struct {
	Fetcher Fetcher
	Scorer  Scorer

	// Optional read-through neighbourhood cache.
	Cache *storage.Cache

	Workers int
}

func (r *Reranker) workers() int {
	if r.Workers > 0 {
		return r.Workers
	}
	return 4
}

func (r *Reranker) neighbourhood(ctx context.Context, uri string) ([]string, error) {
	if r.Cache != nil {
		if lines, ok, err := r.Cache.Get(uri); err == nil && ok {
			return lines, nil
		}
	}
	lines, err := r.Fetcher.FetchNeighbourhood(ctx, uri)
	if err != nil {
		return nil, err
	}
	if r.Cache != nil {
		if err := r.Cache.Put(uri, lines); err != nil {
			log.Printf("neighbourhood cache write for %s: %v", uri, err)
		}
	}
	return lines, nil
}

// Rerank produces the final result for text. In textMatchOnly mode the
// neighbourhood fetches are skipped and all candidates keep their
// retrieval order under a constant score.
func (r *Reranker) Rerank(ctx context.Context, text string,
	spans []linking.Span, candidates [][]linking.Candidate,
	textMatchOnly bool) (*linking.Result, error) {

	result := linking.NewResult(text)
	for i, span := range spans {
		var cands []linking.Candidate
		if i < len(candidates) {
			cands = candidates[i]
		}

		var scored []linking.ScoredEntity
		var err error
		if textMatchOnly {
			scored = constantScores(cands)
		} else {
			scored, err = r.rerankSpan(ctx, text, span, cands)
			if err != nil {
				return nil, err
			}
		}
		result.Results = append(result.Results, linking.SpanResult{
			Label:  span.Label,
			Type:   span.Type,
			Result: scored,
		})
		result.PredictedLabelSpans = append(result.PredictedLabelSpans,
			linking.LabelSpan(span))
	}
	return result, nil
}

func constantScores(cands []linking.Candidate) []linking.ScoredEntity {
	scored := make([]linking.ScoredEntity, 0, len(cands))
	for _, c := range cands {
		scored = append(scored, linking.ScoredEntity{
			Score: -1.0,
			URI:   c.URI,
			Label: c.Label,
			Type:  c.Type,
		})
	}
	return scored
}

func (r *Reranker) rerankSpan(ctx context.Context, text string,
	span linking.Span, cands []linking.Candidate) ([]linking.ScoredEntity, error) {

	type slot struct {
		entity linking.ScoredEntity
		keep   bool
		err    error
	}
	slots := make([]slot, len(cands))

	var wg sync.WaitGroup
	sem := make(chan struct{}, r.workers())
	for i, cand := range cands {
		wg.Add(1)
		go func(i int, cand linking.Candidate) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			evidence, err := r.neighbourhood(ctx, cand.URI)
			if err != nil {
				// A single unreachable entity should not fail the
				// request; it just cannot be ranked.
				log.Printf("neighbourhood for %s: %v", cand.URI, err)
				return
			}
			if len(evidence) == 0 {
				return
			}
			score, best, err := r.Scorer.Score(ctx, span.Label, text,
				cand.URI, evidence)
			if err != nil {
				slots[i].err = err
				return
			}
			slots[i] = slot{
				entity: linking.ScoredEntity{
					Score:    score,
					URI:      cand.URI,
					Label:    cand.Label,
					Type:     cand.Type,
					Evidence: best,
				},
				keep: true,
			}
		}(i, cand)
	}
	wg.Wait()

	scored := make([]linking.ScoredEntity, 0, len(cands))
	for _, s := range slots {
		if s.err != nil {
			return nil, s.err
		}
		if s.keep {
			scored = append(scored, s.entity)
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored, nil
}
