// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// chdirTemp moves the test into an empty directory so no stray config.yaml is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(orig); err != nil {
			t.Errorf("restore working directory: %v", err)
		}
	})
	t.Setenv(ConfigPathEnvVar, "")
	return dir
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Recommend.DefaultK != 5 {
		t.Errorf("Recommend.DefaultK = %d, want 5", cfg.Recommend.DefaultK)
	}
	if cfg.Catalog.Source != CatalogSourceJSON {
		t.Errorf("Catalog.Source = %q, want json", cfg.Catalog.Source)
	}
	if cfg.TMDB.ImageBaseURL != "https://image.tmdb.org/t/p/w500" {
		t.Errorf("TMDB.ImageBaseURL = %q", cfg.TMDB.ImageBaseURL)
	}
	if cfg.TMDB.Language != "en-US" {
		t.Errorf("TMDB.Language = %q, want en-US", cfg.TMDB.Language)
	}
	if cfg.PosterCache.TTL != 7*24*time.Hour {
		t.Errorf("PosterCache.TTL = %v, want 168h", cfg.PosterCache.TTL)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("Security.CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"TMDB_API_KEY", "tmdb.api_key"},
		{"tmdb_enabled", "tmdb.enabled"},
		{"HTTP_PORT", "server.port"},
		{"CATALOG_SOURCE", "catalog.source"},
		{"DUCKDB_PATH", "catalog.duckdb_path"},
		{"POSTER_CACHE_IN_MEMORY", "poster_cache.in_memory"},
		{"RATE_LIMIT_REQUESTS", "security.rate_limit_reqs"},
		{"LOG_LEVEL", "logging.level"},
		{"PATH", ""},
		{"HOME", ""},
		{"RANDOM_VAR", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("TMDB_API_KEY", "secret-key")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("RECOMMEND_DEFAULT_K", "7")
	t.Setenv("TMDB_TIMEOUT", "3s")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}

	if cfg.TMDB.APIKey != "secret-key" {
		t.Errorf("TMDB.APIKey = %q", cfg.TMDB.APIKey)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Recommend.DefaultK != 7 {
		t.Errorf("Recommend.DefaultK = %d, want 7", cfg.Recommend.DefaultK)
	}
	if cfg.TMDB.Timeout != 3*time.Second {
		t.Errorf("TMDB.Timeout = %v, want 3s", cfg.TMDB.Timeout)
	}
	want := []string{"https://a.example", "https://b.example"}
	if strings.Join(cfg.Security.CORSOrigins, ",") != strings.Join(want, ",") {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
}

func TestLoadWithKoanf_MissingAPIKey(t *testing.T) {
	chdirTemp(t)
	t.Setenv("TMDB_API_KEY", "")

	_, err := LoadWithKoanf()
	if err == nil {
		t.Fatal("expected error when TMDB is enabled without an API key")
	}
	if !strings.Contains(err.Error(), "TMDB_API_KEY") {
		t.Errorf("error should name TMDB_API_KEY: %v", err)
	}
}

func TestLoadWithKoanf_TMDBDisabled(t *testing.T) {
	chdirTemp(t)
	t.Setenv("TMDB_API_KEY", "")
	t.Setenv("TMDB_ENABLED", "false")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}
	if cfg.TMDB.Enabled {
		t.Error("TMDB.Enabled should be false")
	}
}

func TestLoadWithKoanf_YAMLFile(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("TMDB_API_KEY", "k")

	yaml := `
server:
  port: 7000
catalog:
  source: duckdb
  duckdb_path: /tmp/catalog.duckdb
poster_warmup:
  enabled: true
  concurrency: 8
`
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "7001")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}
	if cfg.Server.Port != 7001 {
		t.Errorf("env should override file: port = %d, want 7001", cfg.Server.Port)
	}
	if cfg.Catalog.Source != CatalogSourceDuckDB || cfg.Catalog.DuckDBPath != "/tmp/catalog.duckdb" {
		t.Errorf("Catalog = %+v", cfg.Catalog)
	}
	if !cfg.PosterWarmup.Enabled || cfg.PosterWarmup.Concurrency != 8 {
		t.Errorf("PosterWarmup = %+v", cfg.PosterWarmup)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults with key", mutate: func(*Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: "Port"},
		{name: "bad source", mutate: func(c *Config) { c.Catalog.Source = "csv" }, wantErr: "Source"},
		{name: "default k above max", mutate: func(c *Config) { c.Recommend.DefaultK = 60 }, wantErr: "RECOMMEND_DEFAULT_K"},
		{name: "json without paths", mutate: func(c *Config) { c.Catalog.SimilarityPath = "" }, wantErr: "CATALOG_SIMILARITY_PATH"},
		{name: "duckdb without path", mutate: func(c *Config) {
			c.Catalog.Source = CatalogSourceDuckDB
			c.Catalog.DuckDBPath = ""
		}, wantErr: "CATALOG_DUCKDB_PATH"},
		{name: "poster cache without path", mutate: func(c *Config) { c.PosterCache.Path = "" }, wantErr: "POSTER_CACHE_PATH"},
		{name: "in-memory poster cache", mutate: func(c *Config) {
			c.PosterCache.Path = ""
			c.PosterCache.InMemory = true
		}},
		{name: "bad log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "Format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.TMDB.APIKey = "k"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
