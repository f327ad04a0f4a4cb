// Candidate retrieval from the entity label index.
package index

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v7"

	"github.com/semantic-systems/dblplink-2.0/linking"
)

// RDF schema types accepted for each mention type.
var typeFilters = map[string][]string{
	linking.TypePerson: {
		"https://dblp.org/rdf/schema#Creator",
		"https://dblp.org/rdf/schema#Person",
	},
	linking.TypePublication: {
		"https://dblp.org/rdf/schema#Book",
		"https://dblp.org/rdf/schema#Article",
		"https://dblp.org/rdf/schema#Publication",
	},
	linking.TypeVenue: {
		"https://dblp.org/rdf/schema#Stream",
	},
}

const maxCandidates = 10

// Client queries an Elasticsearch index of entity labels.
type Client struct {
	es    *elasticsearch.Client
	index string
}

func New(address, index string) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{address},
	})
	if err != nil {
		return nil, err
	}
	return &Client{es: es, index: index}, nil
}

type searchQuery struct {
	Size  int `json:"size"`
	Query struct {
		Bool struct {
			Must []map[string]interface{} `json:"must"`
		} `json:"bool"`
	} `json:"query"`
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string `json:"_id"`
			Source struct {
				Label string `json:"label"`
				Type  string `json:"type"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

type errorResponse struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
}

// Search returns up to ten candidates for span: exact match on the RDF
// type, textual match on the label. A span of unknown type gets a type
// filter that matches nothing, and so no candidates.
func (c *Client) Search(ctx context.Context, span linking.Span) ([]linking.Candidate, error) {
	types := typeFilters[span.Type]
	if types == nil {
		types = []string{}
	}

	var q searchQuery
	q.Size = maxCandidates
	q.Query.Bool.Must = []map[string]interface{}{
		{"terms": map[string]interface{}{"type": types}},
		{"match": map[string]interface{}{"label": span.Label}},
	}
	body, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("index: %v", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		var e errorResponse
		if err := json.NewDecoder(res.Body).Decode(&e); err != nil {
			return nil, fmt.Errorf("index: %s", res.Status())
		}
		return nil, fmt.Errorf("index: %s: %s", e.Error.Type, e.Error.Reason)
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("index: %v", err)
	}

	cands := make([]linking.Candidate, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		cands = append(cands, linking.Candidate{
			URI:   hit.ID,
			Label: hit.Source.Label,
			Type:  hit.Source.Type,
		})
	}
	return cands, nil
}
