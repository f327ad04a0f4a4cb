// Client for the knowledge graph's SPARQL endpoint.
package kg

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const prefixes = `PREFIX rdfs: <http://www.w3.org/2000/01/rdf-schema#>
PREFIX skos: <http://www.w3.org/2004/02/skos/core#>
PREFIX dc: <http://purl.org/dc/elements/1.1/>
PREFIX foaf: <http://xmlns.com/foaf/0.1/>
PREFIX dblp: <https://dblp.org/rdf/schema#>
`

// Any of these predicates may carry a human-readable name for a node.
const labelPath = `rdfs:label|skos:prefLabel|dc:title|foaf:name|dblp:abstract|dc:description|dblp:title`

// Signature nodes are internal bookkeeping and drown out real evidence.
const signatureFilter = `FILTER (?p NOT IN (dblp:signatureCreator,dblp:signaturePublication,dblp:hasSignature))`

const subjectQueryFormat = prefixes + `
SELECT DISTINCT ?sLabel ?p ?oLabel WHERE {
    VALUES ?s { <%s> }
    ?s ?p ?o .
    OPTIONAL { ?s ` + labelPath + ` ?sLabel }
    OPTIONAL { ?p ` + labelPath + ` ?pLabel }
    OPTIONAL { ?o ` + labelPath + ` ?oLabel }
    ` + signatureFilter + `
} LIMIT 30`

const objectQueryFormat = prefixes + `
SELECT DISTINCT ?sLabel ?pLabel ?oLabel WHERE {
    VALUES ?o { <%s> }
    ?s ?p ?o .
    OPTIONAL { ?s ` + labelPath + ` ?sLabel }
    OPTIONAL { ?p ` + labelPath + ` ?pLabel }
    OPTIONAL { ?o ` + labelPath + ` ?oLabel }
    ` + signatureFilter + `
} LIMIT 30`

// Client fetches entity neighbourhoods from a SPARQL endpoint.
type Client struct {
	endpoint string
	http     *http.Client
}

func New(endpoint string) *Client {
	return &Client{endpoint: endpoint, http: http.DefaultClient}
}

type bindingValue struct {
	Value string `json:"value"`
}

type binding map[string]bindingValue

type sparqlResults struct {
	Results struct {
		Bindings []binding `json:"bindings"`
	} `json:"results"`
}

func (c *Client) query(ctx context.Context, q string) (*sparqlResults, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.endpoint+"?query="+url.QueryEscape(q), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/sparql-results+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sparql: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sparql: HTTP error %d for %s",
			resp.StatusCode, c.endpoint)
	}

	var results sparqlResults
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("sparql: %v", err)
	}
	return &results, nil
}

// FetchNeighbourhood returns the one-hop neighbourhood of the entity at
// uri, linearised to "s — p — o" evidence lines. Triples are collected in
// both directions, thirty per direction at most.
func (c *Client) FetchNeighbourhood(ctx context.Context, uri string) ([]string, error) {
	subj, err := c.query(ctx, fmt.Sprintf(subjectQueryFormat, uri))
	if err != nil {
		return nil, err
	}
	obj, err := c.query(ctx, fmt.Sprintf(objectQueryFormat, uri))
	if err != nil {
		return nil, err
	}
	return linearise(subj, obj), nil
}

// linearise renders binding rows as evidence lines. As-subject rows carry
// the raw predicate URI, as-object rows its label. Rows with a missing
// field or a blank node are dropped.
func linearise(subj, obj *sparqlResults) []string {
	lines := make([]string, 0)
	for _, b := range subj.Results.Bindings {
		if line, ok := b.triple("sLabel", "p", "oLabel"); ok {
			lines = append(lines, line)
		}
	}
	for _, b := range obj.Results.Bindings {
		if line, ok := b.triple("sLabel", "pLabel", "oLabel"); ok {
			lines = append(lines, line)
		}
	}
	return lines
}

func (b binding) triple(sKey, pKey, oKey string) (string, bool) {
	s := strings.TrimSpace(b[sKey].Value)
	p := strings.TrimSpace(b[pKey].Value)
	o := strings.TrimSpace(b[oKey].Value)
	if s == "" || p == "" || o == "" {
		return "", false
	}
	if strings.Contains(s, "_:bn") || strings.Contains(o, "_:bn") {
		return "", false
	}
	return s + " — " + p + " — " + o, true
}
