// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package poster

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// CachedResolverConfig sizes the in-memory layer of a CachedResolver.
type CachedResolverConfig struct {
	// MemoryEntries caps the in-memory LRU. 0 disables it.
	MemoryEntries int

	// MemoryTTL bounds how long positive entries stay in memory.
	MemoryTTL time.Duration

	// NegativeTTL bounds how long "no poster" stays in memory.
	NegativeTTL time.Duration
}

// CachedResolver resolves posters through a memory LRU, then the optional
// Badger store, then upstream. Successful upstream answers, including "no
// poster", are written back to both layers. Upstream failures are not
// cached.
type CachedResolver struct {
	upstream    Resolver
	store       *BadgerStore
	memory      *cache.LRU[int, string]
	negativeTTL time.Duration
	logger      zerolog.Logger
}

var _ Resolver = (*CachedResolver)(nil)

// NewCachedResolver builds the chain. store may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCachedResolver(upstream Resolver, store *BadgerStore, cfg CachedResolverConfig, logger zerolog.Logger) *CachedResolver {
	r := &CachedResolver{
		upstream:    upstream,
		store:       store,
		negativeTTL: cfg.NegativeTTL,
		logger:      logger.With().Str("component", "poster").Logger(),
	}
	if cfg.MemoryEntries > 0 {
		r.memory = cache.NewLRU[int, string](cfg.MemoryEntries, cfg.MemoryTTL)
	}
	return r
}

// PosterURL returns the poster URL for movieID, or "" when none is
// available. Upstream failures are logged and reported as "". Only a done
// ctx produces an error.
func (r *CachedResolver) PosterURL(ctx context.Context, movieID int) (string, error) {
	url, err := r.Lookup(ctx, movieID)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		r.logger.Warn().Err(err).Int("movie_id", movieID).Msg("poster lookup failed, serving without poster")
		return "", nil
	}
	return url, nil
}

// Lookup is PosterURL without degradation: upstream errors are returned.
func (r *CachedResolver) Lookup(ctx context.Context, movieID int) (string, error) {
	if movieID <= 0 {
		return "", ErrInvalidMovieID
	}

	if r.memory != nil {
		if url, ok := r.memory.Get(movieID); ok {
			metrics.CacheHits.WithLabelValues(metrics.CachePosterMemory).Inc()
			return url, nil
		}
		metrics.CacheMisses.WithLabelValues(metrics.CachePosterMemory).Inc()
	}

	if r.store != nil {
		url, found, err := r.store.Get(ctx, movieID)
		switch {
		case err != nil:
			r.logger.Warn().Err(err).Int("movie_id", movieID).Msg("poster store read failed")
		case found:
			metrics.CacheHits.WithLabelValues(metrics.CachePosterBadger).Inc()
			r.remember(movieID, url)
			return url, nil
		default:
			metrics.CacheMisses.WithLabelValues(metrics.CachePosterBadger).Inc()
		}
	}

	url, err := r.upstream.PosterURL(ctx, movieID)
	if err != nil {
		return "", err
	}

	r.remember(movieID, url)
	if r.store != nil {
		if err := r.store.Put(ctx, movieID, url); err != nil {
			r.logger.Warn().Err(err).Int("movie_id", movieID).Msg("poster store write failed")
		}
	}
	return url, nil
}

func (r *CachedResolver) remember(movieID int, url string) {
	if r.memory == nil {
		return
	}
	if url == "" && r.negativeTTL > 0 {
		r.memory.AddWithTTL(movieID, url, r.negativeTTL)
		return
	}
	r.memory.Add(movieID, url)
}

// MemoryStats reports the in-memory layer counters.
func (r *CachedResolver) MemoryStats() cache.LRUStats {
	if r.memory == nil {
		return cache.LRUStats{}
	}
	return r.memory.Stats()
}

// CacheStats summarises both cache layers for the stats endpoint.
type CacheStats struct {
	MemoryEntries int     `json:"memory_entries"`
	MemoryHits    int64   `json:"memory_hits"`
	MemoryMisses  int64   `json:"memory_misses"`
	MemoryHitRate float64 `json:"memory_hit_rate"`
	Persistent    bool    `json:"persistent"`
	StoredPosters int     `json:"stored_posters"`
	StoredMissing int     `json:"stored_missing"`
}

// CacheStats reports memory counters and, when a store is attached, the
// number of persisted positive and negative entries.
func (r *CachedResolver) CacheStats(ctx context.Context) (CacheStats, error) {
	mem := r.MemoryStats()
	stats := CacheStats{
		MemoryEntries: mem.Size,
		MemoryHits:    mem.Hits,
		MemoryMisses:  mem.Misses,
		MemoryHitRate: cache.HitRate(mem.Hits, mem.Misses),
	}
	if r.store == nil {
		return stats, nil
	}

	stats.Persistent = true
	positive, negative, err := r.store.Count(ctx)
	if err != nil {
		return stats, fmt.Errorf("count stored posters: %w", err)
	}
	stats.StoredPosters = positive
	stats.StoredMissing = negative
	return stats, nil
}
