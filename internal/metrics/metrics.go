// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommendation outcome label values.
const (
	OutcomeSuccess  = "success"
	OutcomeCacheHit = "cache_hit"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
	OutcomeCanceled = "canceled"
)

// Poster lookup result label values.
const (
	PosterFound    = "found"
	PosterMissing  = "missing"
	PosterError    = "error"
	PosterRejected = "rejected"
)

// cache_type label values.
const (
	CacheRecommend    = "recommend"
	CachePosterMemory = "poster_memory"
	CachePosterBadger = "poster_badger"
)

var (
	// Catalog
	CatalogMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_movies",
			Help: "Number of movies in the loaded catalog",
		},
	)

	CatalogLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_load_duration_seconds",
			Help:    "Time spent loading the catalog and similarity matrix",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"source"},
	)

	// Recommendations
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"},
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Time to rank and resolve one recommendation request",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
	)

	// Posters
	PosterLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poster_lookups_total",
			Help: "Upstream poster lookups by result",
		},
		[]string{"result"}, // found, missing, error, rejected
	)

	PosterLookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "poster_lookup_duration_seconds",
			Help:    "Duration of upstream TMDB movie detail calls",
			Buckets: prometheus.DefBuckets,
		},
	)

	PosterWarmupProgress = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "poster_warmup_movies",
			Help: "Poster warmup progress (state: total, done, failed)",
		},
		[]string{"state"},
	)

	// Caches
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	// API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Circuit breaker
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordRecommendation records one Engine.Recommend call.
func RecordRecommendation(outcome string, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(outcome).Inc()
	RecommendationDuration.Observe(duration.Seconds())
}

// RecordPosterLookup records one upstream poster call.
func RecordPosterLookup(result string, duration time.Duration) {
	PosterLookups.WithLabelValues(result).Inc()
	if result != PosterRejected {
		PosterLookupDuration.Observe(duration.Seconds())
	}
}

// RecordCatalogLoad records how long a catalog source took and the resulting size.
func RecordCatalogLoad(source string, movies int, duration time.Duration) {
	CatalogLoadDuration.WithLabelValues(source).Observe(duration.Seconds())
	CatalogMovies.Set(float64(movies))
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
