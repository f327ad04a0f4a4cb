// Mention detection for the linking pipeline.
package spotting

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"github.com/semantic-systems/dblplink-2.0/linking"
	"github.com/semantic-systems/dblplink-2.0/nlp"
)

// Question words and other capitalized tokens that never start a mention.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "at": true, "by": true,
	"did": true, "do": true, "does": true, "for": true, "how": true,
	"in": true, "is": true, "of": true, "on": true, "or": true, "the": true,
	"was": true, "were": true, "what": true, "when": true, "where": true,
	"which": true, "who": true, "whom": true, "whose": true, "with": true,
}

// HeuristicSpotter detects mentions without a language model: it keeps
// the longest non-overlapping runs of capitalized tokens. A single
// all-caps token is taken for a venue acronym, anything else for a
// person name. Used when no API key is configured.
type HeuristicSpotter struct {
	// Maximum mention length in tokens.
	MaxNGram int
}

func (h HeuristicSpotter) maxN() int {
	if h.MaxNGram > 0 {
		return h.MaxNGram
	}
	return 4
}

func (h HeuristicSpotter) Detect(ctx context.Context, text string) ([]linking.Span, error) {
	tokens, pos := nlp.TokenizePos(text)

	var mentions [][]int
	for _, g := range nlp.NGramsPos(tokens, 1, h.maxN()) {
		if capitalizedRun(tokens[g[0]:g[1]]) {
			mentions = append(mentions, g)
		}
	}
	mentions = longestNonOverlapping(mentions)

	spans := make([]linking.Span, 0, len(mentions))
	for _, m := range mentions {
		label := text[pos[m[0]][0]:pos[m[1]-1][1]]
		typ := linking.TypePerson
		if m[1]-m[0] == 1 && len(label) > 1 && label == strings.ToUpper(label) {
			typ = linking.TypeVenue
		}
		spans = append(spans, linking.Span{Label: label, Type: typ})
	}
	return spans, nil
}

func capitalizedRun(tokens []string) bool {
	for _, token := range tokens {
		if token == "<NUM>" || stopwords[strings.ToLower(token)] {
			return false
		}
		first := []rune(token)[0]
		if !unicode.IsUpper(first) {
			return false
		}
	}
	return true
}

// Greedy selection: longer mentions win, ties go to the earlier one.
// The result is sorted by position.
func longestNonOverlapping(mentions [][]int) [][]int {
	sort.Slice(mentions, func(i, j int) bool {
		li, lj := mentions[i][1]-mentions[i][0], mentions[j][1]-mentions[j][0]
		if li != lj {
			return li > lj
		}
		return mentions[i][0] < mentions[j][0]
	})

	taken := make(map[int]bool)
	keep := make([][]int, 0, len(mentions))
	for _, m := range mentions {
		free := true
		for i := m[0]; i < m[1]; i++ {
			if taken[i] {
				free = false
				break
			}
		}
		if !free {
			continue
		}
		for i := m[0]; i < m[1]; i++ {
			taken[i] = true
		}
		keep = append(keep, m)
	}

	sort.Slice(keep, func(i, j int) bool { return keep[i][0] < keep[j][0] })
	return keep
}
