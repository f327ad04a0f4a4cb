// Simplistic tokenizer for English/similar languages.

package nlp

import "regexp"

var (
	// Four-digit strings are typically years, and are often linked.
	numericRE = regexp.MustCompile(`^\d([\d\.\,]{4,})?$`)
	tokenRE   = regexp.MustCompile(`(\w|\b['\.,]\b)+`)
)

func Tokenize(s string) (tokens []string) {
	matches := tokenRE.FindAllString(s, -1)
	tokens = make([]string, 0, len(matches))
	for _, token := range matches {
		if numericRE.MatchString(token) {
			token = "<NUM>"
		}
		tokens = append(tokens, token)
	}
	return
}

// TokenizePos tokenizes s and also reports each token's byte offsets in s
// as [start, end) pairs.
func TokenizePos(s string) (tokens []string, pos [][]int) {
	pos = tokenRE.FindAllStringIndex(s, -1)
	tokens = make([]string, len(pos))
	for i, loc := range pos {
		token := s[loc[0]:loc[1]]
		if numericRE.MatchString(token) {
			token = "<NUM>"
		}
		tokens[i] = token
	}
	return
}
