// Environment-driven configuration for the dblplink services.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Settings for a linking pipeline. All fields have working defaults for a
// local deployment; GenAIAPIKey is optional and selects between the LLM
// and the heuristic pipeline.
type Settings struct {
	ElasticsearchURL   string
	ElasticsearchIndex string
	SPARQLEndpoint     string
	GenAIAPIKey        string
	GenAIModel         string
	CachePath          string
}

// Load reads settings from the environment, consulting a .env file if one
// is present.
func Load() *Settings {
	_ = godotenv.Load()

	s := &Settings{
		ElasticsearchURL:   os.Getenv("ELASTICSEARCH_URL"),
		ElasticsearchIndex: os.Getenv("ELASTICSEARCH_INDEX"),
		SPARQLEndpoint:     os.Getenv("SPARQL_ENDPOINT"),
		GenAIAPIKey:        os.Getenv("GENAI_API_KEY"),
		GenAIModel:         os.Getenv("GENAI_MODEL"),
		CachePath:          os.Getenv("CACHE_PATH"),
	}
	if s.ElasticsearchURL == "" {
		s.ElasticsearchURL = "http://localhost:9222"
	}
	if s.ElasticsearchIndex == "" {
		s.ElasticsearchIndex = "dblp"
	}
	if s.SPARQLEndpoint == "" {
		s.SPARQLEndpoint = "http://localhost:8897/sparql"
	}
	if s.GenAIModel == "" {
		s.GenAIModel = "gemini-1.5-flash-002"
	}
	return s
}
