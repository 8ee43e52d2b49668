// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"errors"
	"time"

	"github.com/tomtom215/reelmatch/internal/catalog"
)

// ErrInvalidRequest marks a request the engine refuses before ranking.
var ErrInvalidRequest = errors.New("invalid recommendation request")

// Store is the read-only catalog view the ranking needs.
// *catalog.Catalog implements it.
type Store interface {
	Len() int
	ResolveIndex(title string) (int, error)
	MovieAt(index int) (catalog.Movie, error)
	Row(index int) ([]float64, error)
}

// Recommendation is one ranked result.
type Recommendation struct {
	// Rank is 1-based position in the result list.
	Rank int `json:"rank"`

	// Index is the catalog index of the movie.
	Index int `json:"index"`

	// ID is the TMDB movie id, used for poster lookups.
	ID int `json:"id"`

	Title string `json:"title"`

	// Score is the similarity to the query movie.
	Score float64 `json:"score"`
}

// Request asks the Engine for recommendations similar to Title.
type Request struct {
	Title string `json:"title"`

	// K is the number of results wanted. 0 selects the configured default;
	// values above the configured maximum are clamped.
	K int `json:"k"`

	// RequestID is filled in from the context or generated when empty.
	RequestID string `json:"request_id,omitempty"`
}

// QueryMovie echoes the resolved query.
type QueryMovie struct {
	Index int    `json:"index"`
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// Response is the Engine's answer.
type Response struct {
	Query    QueryMovie       `json:"query"`
	Items    []Recommendation `json:"items"`
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	RequestID   string    `json:"request_id"`
	K           int       `json:"k"`
	Returned    int       `json:"returned"`
	CatalogSize int       `json:"catalog_size"`
	LatencyMS   int64     `json:"latency_ms"`
	CacheHit    bool      `json:"cache_hit"`
	Timestamp   time.Time `json:"timestamp"`
}

// EngineStats are cumulative counters since the engine was created.
type EngineStats struct {
	Requests     int64   `json:"requests"`
	Succeeded    int64   `json:"succeeded"`
	CacheHits    int64   `json:"cache_hits"`
	CacheMisses  int64   `json:"cache_misses"`
	CacheHitRate float64 `json:"cache_hit_rate"`
	NotFound     int64   `json:"not_found"`
	Canceled     int64   `json:"canceled"`
	Errors       int64   `json:"errors"`
	CacheSize    int     `json:"cache_size"`
}
