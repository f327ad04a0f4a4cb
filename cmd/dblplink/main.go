// dblplink: entity linking server for the DBLP knowledge graph.
//
// Takes questions (from stdin or an HTTP connection) and links the
// entity mentions in them to DBLP, using a label index for candidate
// retrieval and the knowledge graph's SPARQL endpoint for evidence.
//
// Run with --help to see command-line usage.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"gopkg.in/alecthomas/kingpin.v1"

	"github.com/semantic-systems/dblplink-2.0/config"
	"github.com/semantic-systems/dblplink-2.0/index"
	"github.com/semantic-systems/dblplink-2.0/kg"
	"github.com/semantic-systems/dblplink-2.0/linking"
	"github.com/semantic-systems/dblplink-2.0/llms"
	"github.com/semantic-systems/dblplink-2.0/rerank"
	"github.com/semantic-systems/dblplink-2.0/spotting"
	"github.com/semantic-systems/dblplink-2.0/storage"
)

var (
	port = kingpin.Arg("port", "port to serve on").Default("5002").Int()
	esURL = kingpin.Flag("elasticsearch",
		"label index address (overrides ELASTICSEARCH_URL)").Default("").String()
	esIndex = kingpin.Flag("index",
		"label index name (overrides ELASTICSEARCH_INDEX)").Default("").String()
	sparql = kingpin.Flag("sparql",
		"SPARQL endpoint (overrides SPARQL_ENDPOINT)").Default("").String()
	model = kingpin.Flag("model",
		"generative model name (overrides GENAI_MODEL)").Default("").String()
	cachePath = kingpin.Flag("cache",
		"neighbourhood cache path (overrides CACHE_PATH)").Default("").String()
	stdin = kingpin.Flag("stdin",
		"read questions from stdin instead of serving HTTP").Bool()
	workers = kingpin.Flag("workers",
		"concurrent candidate scorers per span").Default("4").Int()
)

func settings() *config.Settings {
	cfg := config.Load()
	if *esURL != "" {
		cfg.ElasticsearchURL = *esURL
	}
	if *esIndex != "" {
		cfg.ElasticsearchIndex = *esIndex
	}
	if *sparql != "" {
		cfg.SPARQLEndpoint = *sparql
	}
	if *model != "" {
		cfg.GenAIModel = *model
	}
	if *cachePath != "" {
		cfg.CachePath = *cachePath
	}
	return cfg
}

func newLinker(cfg *config.Settings) (*linking.Linker, error) {
	retriever, err := index.New(cfg.ElasticsearchURL, cfg.ElasticsearchIndex)
	if err != nil {
		return nil, err
	}

	var spotter linking.Spotter
	var scorer rerank.Scorer
	if cfg.GenAIAPIKey != "" {
		llm, err := llms.NewGoogleAI(context.Background(),
			cfg.GenAIAPIKey, cfg.GenAIModel)
		if err != nil {
			return nil, err
		}
		log.Printf("using model %s", cfg.GenAIModel)
		spotter = spotting.NewLLMSpotter(llm)
		scorer = rerank.NewLLMScorer(llm)
	} else {
		log.Print("no API key configured; using heuristic spotting and scoring")
		spotter = spotting.HeuristicSpotter{}
		scorer = rerank.OverlapScorer{}
	}

	reranker := &rerank.Reranker{
		Fetcher: kg.New(cfg.SPARQLEndpoint),
		Scorer:  scorer,
		Workers: *workers,
	}
	if cfg.CachePath != "" {
		cache, err := storage.Open(cfg.CachePath)
		if err != nil {
			return nil, err
		}
		log.Printf("neighbourhood cache at %s", cfg.CachePath)
		reranker.Cache = cache
	}

	return linking.New(spotter, retriever, reranker), nil
}

func main() {
	kingpin.Parse()

	log.SetPrefix("dblplink ")

	var err error
	check := func() {
		if err != nil {
			log.Fatal(err)
		}
	}

	cfg := settings()
	linker, err := newLinker(cfg)
	check()

	if *stdin {
		scanner := bufio.NewScanner(os.Stdin)
		out := json.NewEncoder(os.Stdout)

		for scanner.Scan() {
			var result *linking.Result
			result, err = linker.Link(context.Background(), scanner.Text(), false)
			check()

			err = out.Encode(result)
			check()
		}
		err = scanner.Err()
		check()
	} else {
		log.Printf("serving on port %d", *port)
		log.Fatal(restServer(fmt.Sprintf(":%d", *port), linker, cfg))
	}
}
