// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import "time"

// Catalog source kinds.
const (
	CatalogSourceJSON   = "json"
	CatalogSourceDuckDB = "duckdb"
)

// Config is the complete application configuration.
type Config struct {
	Server       ServerConfig       `koanf:"server"`
	Catalog      CatalogConfig      `koanf:"catalog"`
	Recommend    RecommendConfig    `koanf:"recommend"`
	TMDB         TMDBConfig         `koanf:"tmdb"`
	PosterCache  PosterCacheConfig  `koanf:"poster_cache"`
	PosterWarmup PosterWarmupConfig `koanf:"poster_warmup"`
	Security     SecurityConfig     `koanf:"security"`
	Logging      LoggingConfig      `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port        int           `koanf:"port" validate:"min=1,max=65535"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout" validate:"gt=0"`
	Environment string        `koanf:"environment" validate:"oneof=development staging production"`
}

// CatalogConfig selects where the movie catalog and similarity matrix come from.
type CatalogConfig struct {
	Source         string `koanf:"source" validate:"oneof=json duckdb"`
	MoviesPath     string `koanf:"movies_path"`
	SimilarityPath string `koanf:"similarity_path"`
	DuckDBPath     string `koanf:"duckdb_path"`
}

// RecommendConfig bounds request-time ranking parameters.
type RecommendConfig struct {
	DefaultK        int           `koanf:"default_k" validate:"min=1"`
	MaxK            int           `koanf:"max_k" validate:"min=1"`
	CacheEnabled    bool          `koanf:"cache_enabled"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries int           `koanf:"cache_max_entries" validate:"min=0"`
}

// TMDBConfig configures the poster lookup client.
type TMDBConfig struct {
	Enabled           bool          `koanf:"enabled"`
	APIKey            string        `koanf:"api_key"`
	BaseURL           string        `koanf:"base_url" validate:"required,url"`
	ImageBaseURL      string        `koanf:"image_base_url" validate:"required,url"`
	Language          string        `koanf:"language"`
	Timeout           time.Duration `koanf:"timeout" validate:"gt=0"`
	RequestsPerSecond float64       `koanf:"requests_per_second" validate:"gt=0"`
	Burst             int           `koanf:"burst" validate:"min=1"`
}

// PosterCacheConfig configures the Badger-backed poster URL cache.
type PosterCacheConfig struct {
	Enabled       bool          `koanf:"enabled"`
	Path          string        `koanf:"path"`
	InMemory      bool          `koanf:"in_memory"`
	TTL           time.Duration `koanf:"ttl"`
	NegativeTTL   time.Duration `koanf:"negative_ttl"`
	MemoryEntries int           `koanf:"memory_entries" validate:"min=0"`
	GCInterval    time.Duration `koanf:"gc_interval"`
}

// PosterWarmupConfig controls background prefetching of posters for the catalog.
type PosterWarmupConfig struct {
	Enabled     bool `koanf:"enabled"`
	Concurrency int  `koanf:"concurrency" validate:"min=1,max=64"`
}

// SecurityConfig holds CORS and inbound rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"min=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
