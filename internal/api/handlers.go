// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"time"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/poster"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// defaultPosterConcurrency bounds parallel poster lookups per request.
const defaultPosterConcurrency = 5

// Pinger checks an upstream dependency. *poster.TMDBClient implements it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StateReporter reports a circuit breaker position.
// *poster.CircuitBreakerClient implements it.
type StateReporter interface {
	State() string
}

// CacheReporter summarises the poster caches.
// *poster.CachedResolver implements it.
type CacheReporter interface {
	CacheStats(ctx context.Context) (poster.CacheStats, error)
}

// HandlerDeps are the collaborators a Handler serves from. Catalog and
// Engine are required; the rest are optional.
type HandlerDeps struct {
	Catalog *catalog.Catalog
	Engine  *recommend.Engine

	// Posters resolves poster URLs. Nil disables poster lookups.
	Posters poster.Resolver

	// PosterConcurrency bounds parallel lookups for one recommendation
	// list. Zero selects the default.
	PosterConcurrency int

	// TMDB is pinged by the health endpoint when set.
	TMDB Pinger

	// Breaker is reported by the health endpoint when set.
	Breaker StateReporter

	// PosterCache is reported by the stats endpoint when set.
	PosterCache CacheReporter

	Version string
}

// Handler serves the HTTP API. It holds no mutable state beyond what its
// collaborators guard themselves, so one Handler serves all requests.
type Handler struct {
	catalog           *catalog.Catalog
	engine            *recommend.Engine
	posters           poster.Resolver
	posterConcurrency int
	tmdb              Pinger
	breaker           StateReporter
	posterCache       CacheReporter
	version           string
	startTime         time.Time
}

// NewHandler creates a Handler.
//
//nolint:gocritic // hugeParam: deps passed by value at construction only
func NewHandler(deps HandlerDeps) *Handler {
	posters := deps.Posters
	if posters == nil {
		posters = poster.NoopResolver{}
	}
	concurrency := deps.PosterConcurrency
	if concurrency < 1 {
		concurrency = defaultPosterConcurrency
	}
	version := deps.Version
	if version == "" {
		version = "dev"
	}

	return &Handler{
		catalog:           deps.Catalog,
		engine:            deps.Engine,
		posters:           posters,
		posterConcurrency: concurrency,
		tmdb:              deps.TMDB,
		breaker:           deps.Breaker,
		posterCache:       deps.PosterCache,
		version:           version,
		startTime:         time.Now(),
	}
}

// ready reports whether the handler can answer catalog and recommendation
// requests.
func (h *Handler) ready() bool {
	return h.catalog != nil && h.catalog.Len() > 0 && h.engine != nil
}

// posterURL resolves one poster. Missing posters and lookup failures both
// yield nil so the JSON carries null.
func (h *Handler) posterURL(ctx context.Context, movieID int) *string {
	url, err := h.posters.PosterURL(ctx, movieID)
	if err != nil || url == "" {
		return nil
	}
	return &url
}
