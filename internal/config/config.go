// Package config assembles the runtime configuration of the relations
// builder from environment variables (optionally a .env file) and an
// optional YAML query profile.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/lyrelab/intertext/internal/util"
	"github.com/lyrelab/intertext/pkg/graph"
	"github.com/lyrelab/intertext/pkg/rdf"

	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration.
type Config struct {
	// Upstream endpoint.
	Endpoint          string
	UserAgent         string
	Timeout           time.Duration
	MaxRetries        int
	RequestsPerSecond float64

	// Label resolution.
	PreferredLang string
	FallbackLang  string

	// Graph identity and IO.
	BaseURI    rdf.Namespace
	InputCSV   string
	OutputPath string

	Profile graph.Profile

	Debug bool
}

// Load reads the configuration from the environment. A profile file named
// in INTERTEXT_PROFILE overrides the default query profile.
func Load() (Config, error) {
	util.LoadEnv()

	cfg := Config{
		Endpoint:          util.GetEnvString("INTERTEXT_SPARQL_ENDPOINT", "https://query.wikidata.org/sparql"),
		UserAgent:         util.GetEnvString("INTERTEXT_USER_AGENT", "IntertextRelationsBot/1.0"),
		Timeout:           util.GetEnvDuration("INTERTEXT_HTTP_TIMEOUT", 120*time.Second),
		MaxRetries:        util.GetEnvInt("INTERTEXT_MAX_RETRIES", 5),
		RequestsPerSecond: util.GetEnvFloat("INTERTEXT_REQUESTS_PER_SECOND", 2),
		PreferredLang:     util.GetEnvString("INTERTEXT_LANG", "en"),
		FallbackLang:      util.GetEnvString("INTERTEXT_FALLBACK_LANG", "de"),
		BaseURI:           rdf.Namespace(util.GetEnvString("INTERTEXT_BASE_URI", string(graph.DefaultBaseURI))),
		InputCSV:          util.GetEnvString("INTERTEXT_WORK_IDS", "work-qids.csv"),
		OutputPath:        util.GetEnvString("INTERTEXT_OUTPUT", "relations.ttl"),
		Profile:           graph.DefaultProfile(),
		Debug:             util.GetEnvBool("INTERTEXT_DEBUG", false),
	}

	if path := util.GetEnvString("INTERTEXT_PROFILE", ""); path != "" {
		profile, err := loadProfile(path)
		if err != nil {
			return Config{}, err
		}
		cfg.Profile = profile
	}

	return cfg, nil
}

// loadProfile unmarshals a query profile on top of the defaults, so a file
// only needs to name the fields it changes.
func loadProfile(path string) (graph.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return graph.Profile{}, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	profile := graph.DefaultProfile()
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return graph.Profile{}, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return profile, nil
}
