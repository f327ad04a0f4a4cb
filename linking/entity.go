// Entity linking package.
package linking

import (
	"encoding/json"
	"fmt"
)

// Mention types known to the linker.
const (
	TypePerson      = "person"
	TypePublication = "publication"
	TypeVenue       = "venue"
)

// Represents a mention of an entity in the input text.
type Span struct {
	// Surface form of the mention.
	Label string `json:"label"`

	// Mention type: person, publication or venue.
	Type string `json:"type"`
}

// A candidate entity from the label index.
//
// On the wire this is a positional [uri, label, type] array.
type Candidate struct {
	URI   string
	Label string
	Type  string
}

func (c Candidate) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]string{c.URI, c.Label, c.Type})
}

func (c *Candidate) UnmarshalJSON(data []byte) error {
	var tuple [3]string
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("candidate: %v", err)
	}
	c.URI, c.Label, c.Type = tuple[0], tuple[1], tuple[2]
	return nil
}

// A reranked candidate entity.
//
// On the wire this is a [score, [uri, label, type, evidence]] array.
type ScoredEntity struct {
	Score    float64
	URI      string
	Label    string
	Type     string
	Evidence string
}

func (e ScoredEntity) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{
		e.Score, [4]string{e.URI, e.Label, e.Type, e.Evidence},
	})
}

func (e *ScoredEntity) UnmarshalJSON(data []byte) error {
	var tuple [2]json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("scored entity: %v", err)
	}
	if err := json.Unmarshal(tuple[0], &e.Score); err != nil {
		return fmt.Errorf("scored entity: %v", err)
	}
	var fields [4]string
	if err := json.Unmarshal(tuple[1], &fields); err != nil {
		return fmt.Errorf("scored entity: %v", err)
	}
	e.URI, e.Label, e.Type, e.Evidence = fields[0], fields[1], fields[2], fields[3]
	return nil
}

// Reranked candidates for a single span, best first.
type SpanResult struct {
	Label  string         `json:"label"`
	Type   string         `json:"type"`
	Result []ScoredEntity `json:"result"`
}

// Complete linking result for one question.
type Result struct {
	Results             []SpanResult `json:"entitylinkingresults"`
	PredictedLabelSpans []string     `json:"predictedlabelspans"`
	Question            string       `json:"question"`
}

// NewResult returns an empty result for question. Slices are non-nil so
// that the result encodes with [] rather than null.
func NewResult(question string) *Result {
	return &Result{
		Results:             make([]SpanResult, 0),
		PredictedLabelSpans: make([]string, 0),
		Question:            question,
	}
}

// LabelSpan is the "label : type" rendering used in predictedlabelspans.
func LabelSpan(s Span) string {
	return s.Label + " : " + s.Type
}
