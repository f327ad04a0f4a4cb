package eval

import (
	"github.com/semantic-systems/dblplink-2.0/linking"
)

// Spans of these types count towards the metrics; venue links are not
// annotated in the gold data.
var scoredTypes = map[string]bool{
	linking.TypePerson:      true,
	linking.TypePublication: true,
}

func bracket(uri string) string {
	return "<" + uri + ">"
}

// TopURIs returns the top prediction per qualifying span, deduplicated
// and angle-bracketed like the gold entities.
func TopURIs(result *linking.Result) []string {
	seen := make(map[string]bool)
	uris := make([]string, 0)
	for _, entry := range result.Results {
		if !scoredTypes[entry.Type] || len(entry.Result) == 0 {
			continue
		}
		top := entry.Result[0]
		if top.URI == "" {
			continue
		}
		if uri := bracket(top.URI); !seen[uri] {
			seen[uri] = true
			uris = append(uris, uri)
		}
	}
	return uris
}

// CandidateURIs returns all ranked candidates per qualifying span, for
// the rank-aware metrics.
func CandidateURIs(result *linking.Result) [][]string {
	lists := make([][]string, 0)
	for _, entry := range result.Results {
		if !scoredTypes[entry.Type] {
			continue
		}
		candidates := make([]string, 0, len(entry.Result))
		for _, res := range entry.Result {
			if res.URI != "" {
				candidates = append(candidates, bracket(res.URI))
			}
		}
		if len(candidates) > 0 {
			lists = append(lists, candidates)
		}
	}
	return lists
}

// F1 of the predicted set against the gold set.
func F1(predicted, gold []string) float64 {
	predSet := toSet(predicted)
	goldSet := toSet(gold)

	var truePositive int
	for uri := range predSet {
		if goldSet[uri] {
			truePositive++
		}
	}

	var precision, recall float64
	if len(predSet) > 0 {
		precision = float64(truePositive) / float64(len(predSet))
	}
	if len(goldSet) > 0 {
		recall = float64(truePositive) / float64(len(goldSet))
	}
	if precision+recall == 0 {
		return 0
	}
	return 2 * precision * recall / (precision + recall)
}

// MRR takes, per gold entity, the best rank over all candidate lists.
func MRR(candidateLists [][]string, gold []string) float64 {
	if len(gold) == 0 {
		return 0
	}
	var sum float64
	for _, g := range gold {
		bestRank := 0
		for _, candidates := range candidateLists {
			for rank, uri := range candidates {
				if uri == g && (bestRank == 0 || rank+1 < bestRank) {
					bestRank = rank + 1
				}
			}
		}
		if bestRank > 0 {
			sum += 1 / float64(bestRank)
		}
	}
	return sum / float64(len(gold))
}

// HitsAtK is the fraction of gold entities found in the top k of any
// candidate list.
func HitsAtK(candidateLists [][]string, gold []string, k int) float64 {
	if len(gold) == 0 {
		return 0
	}
	var hits int
	for _, g := range gold {
		for _, candidates := range candidateLists {
			top := candidates
			if len(top) > k {
				top = top[:k]
			}
			if contains(top, g) {
				hits++
				break
			}
		}
	}
	return float64(hits) / float64(len(gold))
}

func toSet(uris []string) map[string]bool {
	set := make(map[string]bool, len(uris))
	for _, uri := range uris {
		set[uri] = true
	}
	return set
}

func contains(uris []string, uri string) bool {
	for _, u := range uris {
		if u == uri {
			return true
		}
	}
	return false
}

// Aggregate accumulates metrics over questions. F1 and MRR average per
// question; Hits@k weights by the number of gold entities.
type Aggregate struct {
	f1, mrr                float64
	hits1, hits5, hits10   float64
	questions, goldCounted int
}

func (a *Aggregate) Add(result *linking.Result, gold []string) {
	predicted := TopURIs(result)
	candidateLists := CandidateURIs(result)

	a.f1 += F1(predicted, gold)
	a.mrr += MRR(candidateLists, gold)
	a.hits1 += HitsAtK(candidateLists, gold, 1) * float64(len(gold))
	a.hits5 += HitsAtK(candidateLists, gold, 5) * float64(len(gold))
	a.hits10 += HitsAtK(candidateLists, gold, 10) * float64(len(gold))
	a.questions++
	a.goldCounted += len(gold)
}

func (a *Aggregate) Questions() int { return a.questions }

func (a *Aggregate) F1() float64 { return perQuestion(a.f1, a.questions) }

func (a *Aggregate) MRR() float64 { return perQuestion(a.mrr, a.questions) }

func (a *Aggregate) Hits(k int) float64 {
	var sum float64
	switch k {
	case 1:
		sum = a.hits1
	case 5:
		sum = a.hits5
	case 10:
		sum = a.hits10
	}
	return perQuestion(sum, a.goldCounted)
}

func perQuestion(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
