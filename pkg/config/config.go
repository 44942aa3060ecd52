// Package config loads tool configuration by layering defaults, an optional
// YAML file, and COACHBOT_-prefixed environment variables.
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment variable overrides
// (COACHBOT_LANGUAGE, COACHBOT_LOG_LEVEL, ...).
const EnvPrefix = "COACHBOT_"

// Config holds every tunable of the tool. Zero configuration is required:
// the defaults reproduce the public-endpoint behavior.
type Config struct {
	// WikidataEndpoint is the SPARQL query service URL.
	WikidataEndpoint string `koanf:"wikidata_endpoint"`

	// WikipediaEndpoint is the MediaWiki action API URL.
	WikipediaEndpoint string `koanf:"wikipedia_endpoint"`

	// Language is the label/extract language code.
	Language string `koanf:"language"`

	// UserAgent identifies the tool to both endpoints.
	UserAgent string `koanf:"user_agent"`

	// HTTPTimeout bounds every external request.
	HTTPTimeout time.Duration `koanf:"http_timeout"`

	// RequestInterval is the minimum pause between requests per endpoint.
	RequestInterval time.Duration `koanf:"request_interval"`

	// CacheTTL is the response cache time-to-live. Zero disables caching.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// LogLevel is the zap level for diagnostics on stderr.
	LogLevel string `koanf:"log_level"`

	// AnthropicAPIKey enables the optional LLM answer mode when set.
	AnthropicAPIKey string `koanf:"anthropic_api_key"`

	// AnthropicModel is the model used for LLM answers.
	AnthropicModel string `koanf:"anthropic_model"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		WikidataEndpoint:  "https://query.wikidata.org/sparql",
		WikipediaEndpoint: "https://en.wikipedia.org/w/api.php",
		Language:          "en",
		UserAgent:         "coachbot/0.1 (https://github.com/coolbeans/coachbot; coachbot@coolbeans.dev)",
		HTTPTimeout:       30 * time.Second,
		RequestInterval:   1 * time.Second,
		CacheTTL:          15 * time.Minute,
		LogLevel:          "warn",
		AnthropicModel:    "claude-sonnet-4-5-20250929",
	}
}

// Load builds a Config by layering defaults, the optional YAML file at
// path (empty means no file), and COACHBOT_ environment variables.
// Precedence, low to high: defaults, file, env.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// COACHBOT_LOG_LEVEL -> log_level, matching the koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the invariants the rest of the tool assumes.
func (cfg *Config) Validate() error {
	if cfg.WikidataEndpoint == "" {
		return errors.New("wikidata_endpoint must not be empty")
	}
	if cfg.WikipediaEndpoint == "" {
		return errors.New("wikipedia_endpoint must not be empty")
	}
	if cfg.Language == "" {
		return errors.New("language must not be empty")
	}
	if cfg.HTTPTimeout <= 0 {
		return errors.New("http_timeout must be positive")
	}
	if cfg.RequestInterval < 0 {
		return errors.New("request_interval must not be negative")
	}
	if cfg.CacheTTL < 0 {
		return errors.New("cache_ttl must not be negative")
	}
	return nil
}
