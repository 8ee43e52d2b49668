// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// Engine serves recommendations over a Recommender: it applies K limits,
// caches responses, records metrics and logs each request. It is safe for
// concurrent use.
type Engine struct {
	config      *Config
	logger      zerolog.Logger
	store       Store
	recommender *Recommender

	cache *cache.LRU[cacheKey, *Response]

	requestCount atomic.Int64
	succeeded    atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	notFound     atomic.Int64
	canceled     atomic.Int64
	errorCount   atomic.Int64
}

type cacheKey struct {
	title string
	k     int
}

// NewEngine creates an engine over store. A nil cfg selects DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(store Store, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config:      cfg.Clone(),
		logger:      logger.With().Str("component", "recommend").Logger(),
		store:       store,
		recommender: NewRecommender(store),
	}
	if cfg.Cache.Enabled {
		e.cache = cache.NewLRU[cacheKey, *Response](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}
	metrics.CatalogMovies.Set(float64(store.Len()))

	e.logger.Info().
		Int("catalog_size", store.Len()).
		Int("default_k", cfg.Limits.DefaultK).
		Int("max_k", cfg.Limits.MaxK).
		Bool("cache_enabled", cfg.Cache.Enabled).
		Msg("recommendation engine ready")
	return e, nil
}

// Recommend answers req. Unknown titles return an error matching
// catalog.ErrNotFound; a negative K returns ErrInvalidRequest.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	req, err := e.prepareRequest(ctx, req)
	if err != nil {
		e.errorCount.Add(1)
		metrics.RecordRecommendation(metrics.OutcomeInvalid, time.Since(start))
		return nil, err
	}
	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Str("title", req.Title).
		Int("k", req.K).
		Logger()

	if resp := e.cachedResponse(req, start); resp != nil {
		logger.Debug().Msg("cache hit")
		e.succeeded.Add(1)
		metrics.RecordRecommendation(metrics.OutcomeCacheHit, time.Since(start))
		return resp, nil
	}

	if err := ctx.Err(); err != nil {
		e.canceled.Add(1)
		metrics.RecordRecommendation(metrics.OutcomeCanceled, time.Since(start))
		logger.Debug().Err(err).Msg("request canceled before ranking")
		return nil, err
	}

	items, err := e.recommender.RecommendK(req.Title, req.K)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			e.notFound.Add(1)
			metrics.RecordRecommendation(metrics.OutcomeNotFound, time.Since(start))
			logger.Debug().Msg("title not in catalog")
			return nil, err
		}
		e.errorCount.Add(1)
		metrics.RecordRecommendation(metrics.OutcomeError, time.Since(start))
		logger.Error().Err(err).Msg("recommendation failed")
		return nil, fmt.Errorf("recommend %q: %w", req.Title, err)
	}

	resp := e.buildResponse(req, items, start)
	if e.cache != nil {
		e.cache.Add(cacheKey{title: req.Title, k: req.K}, resp)
	}

	e.succeeded.Add(1)
	metrics.RecordRecommendation(metrics.OutcomeSuccess, time.Since(start))
	logger.Debug().
		Int("returned", len(items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")
	return resp, nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(ctx context.Context, req Request) (Request, error) {
	if req.RequestID == "" {
		req.RequestID = logging.RequestIDFromContext(ctx)
	}
	if req.RequestID == "" {
		req.RequestID = logging.GenerateRequestID()
	}

	switch {
	case req.K < 0:
		return req, fmt.Errorf("%w: k must not be negative, got %d", ErrInvalidRequest, req.K)
	case req.K == 0:
		req.K = e.config.Limits.DefaultK
	case req.K > e.config.Limits.MaxK:
		req.K = e.config.Limits.MaxK
	}
	return req, nil
}

// cachedResponse returns a copy of a cached response re-stamped for this
// request, or nil on a miss.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) cachedResponse(req Request, start time.Time) *Response {
	if e.cache == nil {
		return nil
	}
	cached, ok := e.cache.Get(cacheKey{title: req.Title, k: req.K})
	if !ok {
		e.cacheMisses.Add(1)
		metrics.CacheMisses.WithLabelValues(metrics.CacheRecommend).Inc()
		return nil
	}
	e.cacheHits.Add(1)
	metrics.CacheHits.WithLabelValues(metrics.CacheRecommend).Inc()

	resp := *cached
	resp.Items = append([]Recommendation(nil), cached.Items...)
	resp.Metadata.RequestID = req.RequestID
	resp.Metadata.CacheHit = true
	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	resp.Metadata.Timestamp = time.Now()
	return &resp
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) buildResponse(req Request, items []Recommendation, start time.Time) *Response {
	query := QueryMovie{Title: req.Title, Index: -1}
	if idx, err := e.store.ResolveIndex(req.Title); err == nil {
		if m, err := e.store.MovieAt(idx); err == nil {
			query = QueryMovie{Index: idx, ID: m.ID, Title: m.Title}
		}
	}

	return &Response{
		Query: query,
		Items: items,
		Metadata: ResponseMetadata{
			RequestID:   req.RequestID,
			K:           req.K,
			Returned:    len(items),
			CatalogSize: e.store.Len(),
			LatencyMS:   time.Since(start).Milliseconds(),
			Timestamp:   time.Now(),
		},
	}
}

// Stats returns cumulative request counters. Every request ends in exactly
// one of Succeeded, NotFound, Canceled or Errors.
func (e *Engine) Stats() EngineStats {
	s := EngineStats{
		Requests:    e.requestCount.Load(),
		Succeeded:   e.succeeded.Load(),
		CacheHits:   e.cacheHits.Load(),
		CacheMisses: e.cacheMisses.Load(),
		NotFound:    e.notFound.Load(),
		Canceled:    e.canceled.Load(),
		Errors:      e.errorCount.Load(),
	}
	s.CacheHitRate = cache.HitRate(s.CacheHits, s.CacheMisses)
	if e.cache != nil {
		s.CacheSize = e.cache.Len()
	}
	return s
}

// CatalogSize is the number of movies the engine ranks over.
func (e *Engine) CatalogSize() int {
	return e.store.Len()
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}
