package main

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/semantic-systems/dblplink-2.0/config"
	"github.com/semantic-systems/dblplink-2.0/linking"
)

var infoTemplate = template.Must(template.New("info").Parse(`<html>
<head><title>DBLPLink</title></head>
  <body>
    <h1>DBLPLink</h1>
    <p>
      Linking against the label index at <code>{{.ElasticsearchURL}}</code>
      (index <code>{{.ElasticsearchIndex}}</code>) and the knowledge graph
      at <code>{{.SPARQLEndpoint}}</code>.
    </p>
    <p>Endpoints take JSON via POST requests and produce JSON:
      <ul>
        <li><code>/get_spans</code> detects entity mentions</li>
        <li><code>/get_candidates</code> fetches candidate entities per mention</li>
        <li><code>/get_final_result</code> reranks fetched candidates</li>
        <li><code>/link_entities</code> runs the whole pipeline</li>
      </ul>
    </p>
  </body>
</html>`))

type linkRequest struct {
	Question         string                `json:"question"`
	Spans            []linking.Span        `json:"spans"`
	EntityCandidates [][]linking.Candidate `json:"entity_candidates"`
	TextMatchOnly    bool                  `json:"text_match_only"`
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// decode reads the request body; a request without a question is always
// a client error.
func decode(w http.ResponseWriter, req *http.Request) (*linkRequest, bool) {
	var lr linkRequest
	if err := json.NewDecoder(req.Body).Decode(&lr); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return nil, false
	}
	if lr.Question == "" {
		writeError(w, http.StatusBadRequest,
			"missing 'question' field in JSON body")
		return nil, false
	}
	return &lr, true
}

type server struct {
	linker   *linking.Linker
	settings *config.Settings
}

func (s *server) info(w http.ResponseWriter, req *http.Request) {
	infoTemplate.Execute(w, s.settings)
}

func (s *server) spans(w http.ResponseWriter, req *http.Request) {
	lr, ok := decode(w, req)
	if !ok {
		return
	}
	spans, err := s.linker.DetectSpans(req.Context(), lr.Question)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, spans)
}

func (s *server) candidates(w http.ResponseWriter, req *http.Request) {
	lr, ok := decode(w, req)
	if !ok {
		return
	}
	if len(lr.Spans) == 0 {
		writeError(w, http.StatusBadRequest,
			"missing 'spans' field in JSON body")
		return
	}
	candidates, err := s.linker.FetchCandidates(req.Context(), lr.Question, lr.Spans)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, candidates)
}

func (s *server) finalResult(w http.ResponseWriter, req *http.Request) {
	lr, ok := decode(w, req)
	if !ok {
		return
	}
	if len(lr.Spans) == 0 {
		writeError(w, http.StatusBadRequest,
			"missing 'spans' field in JSON body")
		return
	}
	if len(lr.EntityCandidates) == 0 {
		writeError(w, http.StatusBadRequest,
			"missing 'entity_candidates' field in JSON body")
		return
	}
	result, err := s.linker.Rerank(req.Context(), lr.Question, lr.Spans,
		lr.EntityCandidates, lr.TextMatchOnly)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, result)
}

func (s *server) linkEntities(w http.ResponseWriter, req *http.Request) {
	lr, ok := decode(w, req)
	if !ok {
		return
	}
	result, err := s.linker.Link(req.Context(), lr.Question, lr.TextMatchOnly)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, result)
}

func newMux(linker *linking.Linker, cfg *config.Settings) *http.ServeMux {
	s := &server{linker: linker, settings: cfg}
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.info)
	mux.HandleFunc("/get_spans", s.spans)
	mux.HandleFunc("/get_candidates", s.candidates)
	mux.HandleFunc("/get_final_result", s.finalResult)
	mux.HandleFunc("/link_entities", s.linkEntities)
	return mux
}

func restServer(addr string, linker *linking.Linker, cfg *config.Settings) error {
	return http.ListenAndServe(addr, newMux(linker, cfg))
}
