// Client for the dblplink REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/semantic-systems/dblplink-2.0/linking"
)

// Client talks to a running dblplink server.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{baseURL: baseURL, http: http.DefaultClient}
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	enc, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+path, bytes.NewReader(enc))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("dblplink: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil &&
			apiErr.Error != "" {
			return fmt.Errorf("dblplink: %s", apiErr.Error)
		}
		return fmt.Errorf("dblplink: HTTP error %d for %s",
			resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Spans runs mention detection on question.
func (c *Client) Spans(ctx context.Context, question string) ([]linking.Span, error) {
	var spans []linking.Span
	err := c.post(ctx, "/get_spans",
		map[string]interface{}{"question": question}, &spans)
	return spans, err
}

// Candidates fetches candidate entities for previously detected spans.
func (c *Client) Candidates(ctx context.Context, question string,
	spans []linking.Span) ([][]linking.Candidate, error) {

	var candidates [][]linking.Candidate
	err := c.post(ctx, "/get_candidates", map[string]interface{}{
		"question": question,
		"spans":    spans,
	}, &candidates)
	return candidates, err
}

// FinalResult reranks previously fetched candidates.
func (c *Client) FinalResult(ctx context.Context, question string,
	spans []linking.Span, candidates [][]linking.Candidate) (*linking.Result, error) {

	var result linking.Result
	err := c.post(ctx, "/get_final_result", map[string]interface{}{
		"question":          question,
		"spans":             spans,
		"entity_candidates": candidates,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Link runs the whole pipeline on question.
func (c *Client) Link(ctx context.Context, question string,
	textMatchOnly bool) (*linking.Result, error) {

	var result linking.Result
	err := c.post(ctx, "/link_entities", map[string]interface{}{
		"question":        question,
		"text_match_only": textMatchOnly,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
