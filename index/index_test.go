package index

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/semantic-systems/dblplink-2.0/linking"
)

const hitsBody = `{
	"hits": {"hits": [
		{"_id": "https://dblp.org/pid/20/6100",
		 "_source": {"label": "Chris Biemann", "type": "https://dblp.org/rdf/schema#Creator"}},
		{"_id": "https://dblp.org/pid/306/6142",
		 "_source": {"label": "Chris Biemann 0002", "type": "https://dblp.org/rdf/schema#Creator"}}
	]}
}`

func fakeES(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, "dblp")
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestSearch(t *testing.T) {
	var gotBody map[string]interface{}
	c := fakeES(t, func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/dblp/_search" {
			t.Errorf("unexpected path %q", req.URL.Path)
		}
		if err := json.NewDecoder(req.Body).Decode(&gotBody); err != nil {
			t.Fatal(err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Write([]byte(hitsBody))
	})

	cands, err := c.Search(context.Background(),
		linking.Span{Label: "Chris Biemann", Type: "person"})
	if err != nil {
		t.Fatal(err)
	}
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(cands))
	}
	want := linking.Candidate{
		URI:   "https://dblp.org/pid/20/6100",
		Label: "Chris Biemann",
		Type:  "https://dblp.org/rdf/schema#Creator",
	}
	if cands[0] != want {
		t.Errorf("got %v, want %v", cands[0], want)
	}

	if size := gotBody["size"].(float64); size != 10 {
		t.Errorf("query size %v, want 10", size)
	}
	must := gotBody["query"].(map[string]interface{})["bool"].(map[string]interface{})["must"].([]interface{})
	if len(must) != 2 {
		t.Fatalf("expected terms+match clauses, got %v", must)
	}
	terms := must[0].(map[string]interface{})["terms"].(map[string]interface{})["type"].([]interface{})
	if len(terms) != 2 {
		t.Errorf("expected 2 person type URIs, got %v", terms)
	}
}

func TestSearchUnknownType(t *testing.T) {
	c := fakeES(t, func(w http.ResponseWriter, req *http.Request) {
		var body searchQuery
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		terms := body.Query.Bool.Must[0]["terms"].(map[string]interface{})
		if types := terms["type"].([]interface{}); len(types) != 0 {
			t.Errorf("expected empty type filter, got %v", types)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Write([]byte(`{"hits": {"hits": []}}`))
	})

	cands, err := c.Search(context.Background(),
		linking.Span{Label: "something", Type: "mystery"})
	if err != nil {
		t.Fatal(err)
	}
	if len(cands) != 0 {
		t.Errorf("expected no candidates, got %v", cands)
	}
}

func TestSearchError(t *testing.T) {
	c := fakeES(t, func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": {"type": "index_not_found_exception",
			"reason": "no such index [dblp]"}}`))
	})

	_, err := c.Search(context.Background(),
		linking.Span{Label: "x", Type: "person"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if got := err.Error(); got != "index: index_not_found_exception: no such index [dblp]" {
		t.Errorf("unexpected error %q", got)
	}
}
