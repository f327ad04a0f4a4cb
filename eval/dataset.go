// Evaluation of linking quality on DBLP-QuAD style datasets.
package eval

import (
	"encoding/json"
	"fmt"
	"os"
)

// Question with its gold entity URIs (angle-bracketed).
type Question struct {
	Text     string
	Entities []string
}

// Load reads a DBLP-QuAD questions file:
//
//	{"questions": [{"question": {"string": ...}, "entities": [...]}, ...]}
func Load(path string) ([]Question, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file struct {
		Questions []struct {
			Question struct {
				String string `json:"string"`
			} `json:"question"`
			Entities []string `json:"entities"`
		} `json:"questions"`
	}
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("dataset %s: %v", path, err)
	}

	questions := make([]Question, 0, len(file.Questions))
	for _, q := range file.Questions {
		questions = append(questions, Question{
			Text:     q.Question.String,
			Entities: q.Entities,
		})
	}
	return questions, nil
}
