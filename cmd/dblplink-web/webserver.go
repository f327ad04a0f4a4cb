package main

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/semantic-systems/dblplink-2.0/client"
	"github.com/semantic-systems/dblplink-2.0/linking"
)

var exampleQuestions = []string{
	"Who is the CEO of Apple?",
	"What papers did Chris Biemann publish?",
	"which papers did Debayan Banerjee publish at SIGIR?",
	"Which universities are in Vienna?",
}

var pageTemplate = template.Must(template.New("page").Parse(`<html>
<head><title>DBLP Entity Linker</title></head>
<body>
  <h1>DBLPLink 2.0 Entity Linker</h1>
  <p>Enter a natural language question to extract and link entities.</p>
  <ul id="examples">
  {{range .Examples}}<li><a href="/?q={{.}}">{{.}}</a></li>
  {{end}}</ul>
  <form method="POST" action="/link">
    <textarea name="question" rows="2" cols="80"
      placeholder="e.g., When did Chris Biemann publish a paper in ACL?">{{.Question}}</textarea>
    <br>
    <label><input type="checkbox" name="text_match_only"
      {{if .TextMatchOnly}}checked{{end}}> text match only</label>
    <button type="submit">Submit</button>
  </form>

  {{if .Error}}<div id="error"><b>{{.Error}}</b></div>{{end}}

  {{if .Updates}}
  <h2>Process Log</h2>
  <div id="log">
  {{range .Updates}}<p>{{.}}</p>
  {{end}}</div>
  {{end}}

  {{if .Spans}}
  <h2>Detected Spans</h2>
  <table id="spans" border="1">
    <tr><th>Label</th><th>Type</th></tr>
    {{range .Spans}}<tr><td>{{.Label}}</td><td>{{.Type}}</td></tr>
    {{end}}
  </table>
  {{end}}

  {{if .Candidates}}
  <h2>Fetched Candidates</h2>
  <table id="candidates" border="1">
    <tr><th>Span ID</th><th>Entity URI</th><th>Entity Label</th><th>Entity Type</th></tr>
    {{range .Candidates}}<tr><td>{{.SpanID}}</td><td>{{.URI}}</td><td>{{.Label}}</td><td>{{.Type}}</td></tr>
    {{end}}
  </table>
  {{end}}

  {{if .Finals}}
  <h2>Final Linked Results</h2>
  <table id="results" border="1">
    <tr><th>Span ID</th><th>Label</th><th>Type</th><th>Score</th>
        <th>Evidence Sentence</th><th>URI</th></tr>
    {{range .Finals}}<tr><td>{{.SpanID}}</td><td>{{.Label}}</td><td>{{.Type}}</td>
      <td>{{printf "%.4f" .Score}}</td><td>{{.Evidence}}</td>
      <td><a href="{{.URI}}">{{.URI}}</a></td></tr>
    {{end}}
  </table>
  {{end}}
</body>
</html>`))

type candidateRow struct {
	SpanID int
	URI    string
	Label  string
	Type   string
}

type finalRow struct {
	SpanID   int
	Label    string
	Type     string
	Score    float64
	Evidence string
	URI      string
}

type pageData struct {
	Examples      []string
	Question      string
	TextMatchOnly bool
	Updates       []string
	Error         string
	Spans         []linking.Span
	Candidates    []candidateRow
	Finals        []finalRow
}

type frontend struct {
	backend *client.Client
}

func (f *frontend) index(w http.ResponseWriter, req *http.Request) {
	pageTemplate.Execute(w, &pageData{
		Examples: exampleQuestions,
		Question: req.URL.Query().Get("q"),
	})
}

// link runs the pipeline stage by stage so that partial progress is
// still shown when a later stage fails.
func (f *frontend) link(w http.ResponseWriter, req *http.Request) {
	data := &pageData{
		Examples:      exampleQuestions,
		Question:      req.FormValue("question"),
		TextMatchOnly: req.FormValue("text_match_only") != "",
	}
	defer func() {
		pageTemplate.Execute(w, data)
	}()

	if data.Question == "" {
		data.Error = "no question given"
		return
	}
	ctx := req.Context()
	data.Updates = append(data.Updates, "Starting entity linking process...")

	spans, err := f.backend.Spans(ctx, data.Question)
	if err != nil {
		data.Error = fmt.Sprintf("span detection failed: %v", err)
		return
	}
	data.Spans = spans
	data.Updates = append(data.Updates,
		fmt.Sprintf("Spans received (%d found).", len(spans)))
	if len(spans) == 0 {
		data.Updates = append(data.Updates,
			"Skipping candidate fetching: no spans were detected.")
		return
	}

	candidates, err := f.backend.Candidates(ctx, data.Question, spans)
	if err != nil {
		data.Error = fmt.Sprintf("candidate fetching failed: %v", err)
		return
	}
	var total int
	for spanID, group := range candidates {
		for _, c := range group {
			data.Candidates = append(data.Candidates, candidateRow{
				SpanID: spanID, URI: c.URI, Label: c.Label, Type: c.Type,
			})
			total++
		}
	}
	data.Updates = append(data.Updates,
		fmt.Sprintf("Candidates received (%d found).", total))
	if total == 0 {
		data.Updates = append(data.Updates,
			"Skipping final results: no candidates were found.")
		return
	}

	var result *linking.Result
	if data.TextMatchOnly {
		result, err = f.backend.Link(ctx, data.Question, true)
	} else {
		result, err = f.backend.FinalResult(ctx, data.Question, spans, candidates)
	}
	if err != nil {
		data.Error = fmt.Sprintf("final result failed: %v", err)
		return
	}
	for spanID, sr := range result.Results {
		for _, e := range sr.Result {
			data.Finals = append(data.Finals, finalRow{
				SpanID: spanID, Label: e.Label, Type: e.Type,
				Score: e.Score, Evidence: e.Evidence, URI: e.URI,
			})
		}
	}
	data.Updates = append(data.Updates, "Final results received.",
		"Process completed.")
}

func newMux(backend *client.Client) *http.ServeMux {
	f := &frontend{backend: backend}
	mux := http.NewServeMux()
	mux.HandleFunc("/", f.index)
	mux.HandleFunc("/link", f.link)
	return mux
}

func frontendServer(addr string, backend *client.Client) error {
	return http.ListenAndServe(addr, newMux(backend))
}
