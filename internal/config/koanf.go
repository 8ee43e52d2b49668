// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order; the first existing file wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelmatch/config.yaml",
	"/etc/reelmatch/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8501,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Catalog: CatalogConfig{
			Source:         CatalogSourceJSON,
			MoviesPath:     "/data/movies.json",
			SimilarityPath: "/data/similarity.json",
			DuckDBPath:     "/data/reelmatch.duckdb",
		},
		Recommend: RecommendConfig{
			DefaultK:        5,
			MaxK:            50,
			CacheEnabled:    true,
			CacheTTL:        10 * time.Minute,
			CacheMaxEntries: 4096,
		},
		TMDB: TMDBConfig{
			Enabled:           true,
			BaseURL:           "https://api.themoviedb.org",
			ImageBaseURL:      "https://image.tmdb.org/t/p/w500",
			Language:          "en-US",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 20,
			Burst:             20,
		},
		PosterCache: PosterCacheConfig{
			Enabled:       true,
			Path:          "/data/posters",
			TTL:           7 * 24 * time.Hour,
			NegativeTTL:   6 * time.Hour,
			MemoryEntries: 10000,
			GCInterval:    10 * time.Minute,
		},
		PosterWarmup: PosterWarmupConfig{
			Enabled:     false,
			Concurrency: 4,
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf builds the configuration from three layers, later ones
// overriding earlier ones: struct defaults, an optional YAML file, and
// environment variables.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths arrive from the environment as comma separated strings.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		raw, ok := k.Get(path).(string)
		if !ok || raw == "" {
			continue
		}
		var parts []string
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 {
			continue
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps flat environment variable names onto koanf paths.
// Unlisted variables are ignored so the process environment cannot leak
// into the configuration.
var envMappings = map[string]string{
	// Server
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",

	// Catalog
	"catalog_source":          "catalog.source",
	"catalog_movies_path":     "catalog.movies_path",
	"catalog_similarity_path": "catalog.similarity_path",
	"catalog_duckdb_path":     "catalog.duckdb_path",
	"duckdb_path":             "catalog.duckdb_path",

	// Recommend
	"recommend_default_k":         "recommend.default_k",
	"recommend_max_k":             "recommend.max_k",
	"recommend_cache_enabled":     "recommend.cache_enabled",
	"recommend_cache_ttl":         "recommend.cache_ttl",
	"recommend_cache_max_entries": "recommend.cache_max_entries",

	// TMDB
	"tmdb_enabled":             "tmdb.enabled",
	"tmdb_api_key":             "tmdb.api_key",
	"tmdb_base_url":            "tmdb.base_url",
	"tmdb_image_base_url":      "tmdb.image_base_url",
	"tmdb_language":            "tmdb.language",
	"tmdb_timeout":             "tmdb.timeout",
	"tmdb_requests_per_second": "tmdb.requests_per_second",
	"tmdb_burst":               "tmdb.burst",

	// Poster cache and warmup
	"poster_cache_enabled":        "poster_cache.enabled",
	"poster_cache_path":           "poster_cache.path",
	"poster_cache_in_memory":      "poster_cache.in_memory",
	"poster_cache_ttl":            "poster_cache.ttl",
	"poster_cache_negative_ttl":   "poster_cache.negative_ttl",
	"poster_cache_memory_entries": "poster_cache.memory_entries",
	"poster_cache_gc_interval":    "poster_cache.gc_interval",
	"poster_warmup_enabled":       "poster_warmup.enabled",
	"poster_warmup_concurrency":   "poster_warmup.concurrency",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
