// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package poster

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/metrics"
)

// warmLogEvery controls how often Warm logs progress.
const warmLogEvery = 500

// WarmStats summarizes one warmup run.
type WarmStats struct {
	Total    int           `json:"total"`
	Found    int           `json:"found"`
	Missing  int           `json:"missing"`
	Failed   int           `json:"failed"`
	Duration time.Duration `json:"duration"`
}

// Warmer prefetches posters for many movies so later requests hit the cache.
type Warmer struct {
	resolver    Resolver
	concurrency int
	logger      zerolog.Logger
}

// NewWarmer creates a warmer. Pass a resolver that reports upstream errors
// (for example ResolverFunc(cached.Lookup)) so failures are counted.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewWarmer(resolver Resolver, concurrency int, logger zerolog.Logger) *Warmer {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Warmer{
		resolver:    resolver,
		concurrency: concurrency,
		logger:      logger.With().Str("component", "poster_warmer").Logger(),
	}
}

// Warm resolves every id. It stops dispatching when ctx is done and returns
// the partial stats with ctx.Err().
func (w *Warmer) Warm(ctx context.Context, ids []int) (WarmStats, error) {
	start := time.Now()
	var found, missing, failed, done atomic.Int64

	metrics.PosterWarmupProgress.WithLabelValues("total").Set(float64(len(ids)))
	metrics.PosterWarmupProgress.WithLabelValues("done").Set(0)
	metrics.PosterWarmupProgress.WithLabelValues("failed").Set(0)

	w.logger.Info().Int("movies", len(ids)).Int("concurrency", w.concurrency).Msg("poster warmup started")

	sem := make(chan struct{}, w.concurrency)
	var wg sync.WaitGroup

dispatch:
	for _, id := range ids {
		select {
		case <-ctx.Done():
			break dispatch
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			defer func() { <-sem }()

			url, err := w.resolver.PosterURL(ctx, id)
			switch {
			case err != nil:
				failed.Add(1)
				metrics.PosterWarmupProgress.WithLabelValues("failed").Inc()
				w.logger.Debug().Err(err).Int("movie_id", id).Msg("poster warmup lookup failed")
			case url == "":
				missing.Add(1)
			default:
				found.Add(1)
			}

			n := done.Add(1)
			metrics.PosterWarmupProgress.WithLabelValues("done").Set(float64(n))
			if n%warmLogEvery == 0 {
				w.logger.Info().Int64("done", n).Int("total", len(ids)).Msg("poster warmup progress")
			}
		}(id)
	}

	wg.Wait()

	stats := WarmStats{
		Total:    len(ids),
		Found:    int(found.Load()),
		Missing:  int(missing.Load()),
		Failed:   int(failed.Load()),
		Duration: time.Since(start),
	}

	event := w.logger.Info()
	if ctx.Err() != nil {
		event = w.logger.Warn()
	}
	event.
		Int("total", stats.Total).
		Int("found", stats.Found).
		Int("missing", stats.Missing).
		Int("failed", stats.Failed).
		Dur("duration", stats.Duration).
		Msg("poster warmup finished")

	return stats, ctx.Err()
}
