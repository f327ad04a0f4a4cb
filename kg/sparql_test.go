package kg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

const subjectBody = `{"results": {"bindings": [
	{"sLabel": {"value": "Chris Biemann"},
	 "p": {"value": "https://dblp.org/rdf/schema#primaryAffiliation"},
	 "oLabel": {"value": "Universität Hamburg"}},
	{"sLabel": {"value": "Chris Biemann"},
	 "p": {"value": "https://dblp.org/rdf/schema#authorOf"},
	 "oLabel": {"value": ""}}
]}}`

const objectBody = `{"results": {"bindings": [
	{"sLabel": {"value": "Structure Discovery in Natural Language"},
	 "pLabel": {"value": "authored by"},
	 "oLabel": {"value": "Chris Biemann"}},
	{"sLabel": {"value": "_:bn1234"},
	 "pLabel": {"value": "authored by"},
	 "oLabel": {"value": "Chris Biemann"}}
]}}`

func TestFetchNeighbourhood(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if accept := req.Header.Get("Accept"); accept != "application/sparql-results+json" {
			t.Errorf("unexpected Accept header %q", accept)
		}
		q := req.URL.Query().Get("query")
		queries = append(queries, q)
		w.Header().Set("Content-Type", "application/sparql-results+json")
		if strings.Contains(q, "VALUES ?s") {
			w.Write([]byte(subjectBody))
		} else {
			w.Write([]byte(objectBody))
		}
	}))
	defer srv.Close()

	lines, err := New(srv.URL).FetchNeighbourhood(context.Background(),
		"https://dblp.org/pid/20/6100")
	if err != nil {
		t.Fatal(err)
	}

	// One line per direction survives; incomplete and blank-node rows
	// are dropped.
	want := []string{
		"Chris Biemann — https://dblp.org/rdf/schema#primaryAffiliation — Universität Hamburg",
		"Structure Discovery in Natural Language — authored by — Chris Biemann",
	}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("got %v, want %v", lines, want)
	}

	if len(queries) != 2 {
		t.Fatalf("expected 2 queries, got %d", len(queries))
	}
	for _, q := range queries {
		if !strings.Contains(q, "<https://dblp.org/pid/20/6100>") {
			t.Errorf("query does not mention the entity: %s", q)
		}
		if !strings.Contains(q, "LIMIT 30") {
			t.Error("query has no limit")
		}
		if !strings.Contains(q, "dblp:signatureCreator") {
			t.Error("query does not filter signature predicates")
		}
	}
	if !strings.Contains(queries[1], "VALUES ?o") {
		t.Error("second query should look up the entity as object")
	}
}

func TestFetchNeighbourhoodHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).FetchNeighbourhood(context.Background(),
		"https://dblp.org/pid/20/6100")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("error does not carry the status code: %v", err)
	}
}
