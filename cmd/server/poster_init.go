// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"fmt"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/poster"
)

// posterComponents holds the poster chain. Every field except resolver is
// nil when TMDB is disabled.
type posterComponents struct {
	resolver poster.Resolver
	cached   *poster.CachedResolver
	tmdb     *poster.TMDBClient
	breaker  *poster.CircuitBreakerClient
	store    *poster.BadgerStore
	warmer   *poster.Warmer
}

// initPosters builds memory LRU -> Badger -> circuit breaker -> TMDB.
func initPosters(cfg *config.Config) (*posterComponents, error) {
	if !cfg.TMDB.Enabled {
		logging.Info().Msg("TMDB disabled, recommendations are served without posters")
		return &posterComponents{resolver: poster.NoopResolver{}}, nil
	}

	pc := &posterComponents{}
	pc.tmdb = poster.NewTMDBClient(&cfg.TMDB)
	pc.breaker = poster.NewCircuitBreakerClient(pc.tmdb, "tmdb", poster.DefaultCircuitBreakerSettings(), logging.WithComponent("tmdb-breaker"))

	if cfg.PosterCache.Enabled {
		store, err := poster.NewBadgerStore(poster.BadgerStoreConfig{
			Path:        cfg.PosterCache.Path,
			InMemory:    cfg.PosterCache.InMemory,
			TTL:         cfg.PosterCache.TTL,
			NegativeTTL: cfg.PosterCache.NegativeTTL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open poster cache: %w", err)
		}
		pc.store = store
		logging.Info().
			Str("path", cfg.PosterCache.Path).
			Bool("in_memory", cfg.PosterCache.InMemory).
			Msg("Poster cache opened")
	}

	cached := poster.NewCachedResolver(pc.breaker, pc.store, poster.CachedResolverConfig{
		MemoryEntries: cfg.PosterCache.MemoryEntries,
		MemoryTTL:     cfg.PosterCache.TTL,
		NegativeTTL:   cfg.PosterCache.NegativeTTL,
	}, logging.WithComponent("poster-cache"))
	pc.resolver = cached
	pc.cached = cached

	if cfg.PosterWarmup.Enabled {
		pc.warmer = poster.NewWarmer(poster.ResolverFunc(cached.Lookup), cfg.PosterWarmup.Concurrency, logging.WithComponent("poster-warmup"))
	}
	return pc, nil
}

// Close releases the poster cache.
func (pc *posterComponents) Close() {
	if pc.store == nil {
		return
	}
	if err := pc.store.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close poster cache")
	}
}
