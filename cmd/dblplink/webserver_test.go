package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/semantic-systems/dblplink-2.0/client"
	"github.com/semantic-systems/dblplink-2.0/config"
	"github.com/semantic-systems/dblplink-2.0/linking"
	"github.com/semantic-systems/dblplink-2.0/rerank"
	"github.com/semantic-systems/dblplink-2.0/spotting"
)

type fakeRetriever struct{}

func (fakeRetriever) Search(ctx context.Context, span linking.Span) ([]linking.Candidate, error) {
	if span.Label == "Chris Biemann" {
		return []linking.Candidate{{
			URI:   "https://dblp.org/pid/20/6100",
			Label: "Chris Biemann",
			Type:  "https://dblp.org/rdf/schema#Creator",
		}}, nil
	}
	return []linking.Candidate{}, nil
}

type fakeFetcher struct{}

func (fakeFetcher) FetchNeighbourhood(ctx context.Context, uri string) ([]string, error) {
	return []string{"Chris Biemann — affiliation — Universität Hamburg"}, nil
}

func testServer(t *testing.T) (*httptest.Server, *client.Client) {
	t.Helper()
	linker := linking.New(
		spotting.HeuristicSpotter{},
		fakeRetriever{},
		&rerank.Reranker{Fetcher: fakeFetcher{}, Scorer: rerank.OverlapScorer{}},
	)
	srv := httptest.NewServer(newMux(linker, &config.Settings{
		ElasticsearchURL:   "http://fake:9222",
		ElasticsearchIndex: "dblp",
		SPARQLEndpoint:     "http://fake:8897/sparql",
	}))
	t.Cleanup(srv.Close)
	return srv, client.New(srv.URL)
}

func TestGetSpans(t *testing.T) {
	_, c := testServer(t)
	spans, err := c.Spans(context.Background(),
		"which papers did Chris Biemann publish?")
	if err != nil {
		t.Fatal(err)
	}
	if len(spans) != 1 || spans[0].Label != "Chris Biemann" {
		t.Errorf("unexpected spans %v", spans)
	}
}

func TestGetSpansMissingQuestion(t *testing.T) {
	srv, _ := testServer(t)
	resp, err := http.Post(srv.URL+"/get_spans", "application/json",
		strings.NewReader(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status %d, want 400", resp.StatusCode)
	}
}

func TestGetCandidatesMissingSpans(t *testing.T) {
	_, c := testServer(t)
	_, err := c.Candidates(context.Background(), "a question", nil)
	if err == nil || !strings.Contains(err.Error(), "missing 'spans'") {
		t.Errorf("expected a missing-spans error, got %v", err)
	}
}

func TestPipelineOverHTTP(t *testing.T) {
	_, c := testServer(t)
	ctx := context.Background()
	question := "which papers did Chris Biemann publish?"

	spans, err := c.Spans(ctx, question)
	if err != nil {
		t.Fatal(err)
	}
	candidates, err := c.Candidates(ctx, question, spans)
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 1 || len(candidates[0]) != 1 {
		t.Fatalf("unexpected candidates %v", candidates)
	}

	result, err := c.FinalResult(ctx, question, spans, candidates)
	if err != nil {
		t.Fatal(err)
	}
	if result.Question != question {
		t.Errorf("question %q", result.Question)
	}
	if len(result.Results) != 1 {
		t.Fatalf("results %v", result.Results)
	}
	top := result.Results[0].Result[0]
	if top.URI != "https://dblp.org/pid/20/6100" {
		t.Errorf("top entity %v", top)
	}
	if top.Evidence == "" {
		t.Error("no evidence on the top entity")
	}
}

func TestLinkEntities(t *testing.T) {
	_, c := testServer(t)
	result, err := c.Link(context.Background(),
		"which papers did Chris Biemann publish?", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Results) != 1 {
		t.Fatalf("results %v", result.Results)
	}
	if len(result.PredictedLabelSpans) != 1 ||
		result.PredictedLabelSpans[0] != "Chris Biemann : person" {
		t.Errorf("predictedlabelspans %v", result.PredictedLabelSpans)
	}
}

func TestLinkEntitiesTextMatchOnly(t *testing.T) {
	_, c := testServer(t)
	result, err := c.Link(context.Background(),
		"which papers did Chris Biemann publish?", true)
	if err != nil {
		t.Fatal(err)
	}
	top := result.Results[0].Result[0]
	if top.Score != -1.0 {
		t.Errorf("score %v, want -1", top.Score)
	}
}

func TestInfoPage(t *testing.T) {
	srv, _ := testServer(t)
	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status %d", resp.StatusCode)
	}
}
