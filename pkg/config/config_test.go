package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Language != "en" {
		t.Errorf("language: got %q, want en", cfg.Language)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("http_timeout: got %v, want 30s", cfg.HTTPTimeout)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coachbot.yaml")
	content := "language: de\nlog_level: debug\nrequest_interval: 2s\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Language != "de" {
		t.Errorf("language: got %q, want de", cfg.Language)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log_level: got %q, want debug", cfg.LogLevel)
	}
	if cfg.RequestInterval != 2*time.Second {
		t.Errorf("request_interval: got %v, want 2s", cfg.RequestInterval)
	}
	// Unset keys keep their defaults.
	if cfg.WikidataEndpoint != Default().WikidataEndpoint {
		t.Errorf("wikidata_endpoint changed unexpectedly: %q", cfg.WikidataEndpoint)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coachbot.yaml")
	if err := os.WriteFile(path, []byte("language: de\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("COACHBOT_LANGUAGE", "fr")
	t.Setenv("COACHBOT_LOG_LEVEL", "error")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Language != "fr" {
		t.Errorf("language: got %q, want fr (env wins over file)", cfg.Language)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("log_level: got %q, want error", cfg.LogLevel)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty wikidata endpoint", func(c *Config) { c.WikidataEndpoint = "" }},
		{"empty wikipedia endpoint", func(c *Config) { c.WikipediaEndpoint = "" }},
		{"empty language", func(c *Config) { c.Language = "" }},
		{"zero timeout", func(c *Config) { c.HTTPTimeout = 0 }},
		{"negative interval", func(c *Config) { c.RequestInterval = -time.Second }},
		{"negative cache ttl", func(c *Config) { c.CacheTTL = -time.Minute }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
