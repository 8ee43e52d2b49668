// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package metrics defines the Prometheus metrics exported on /metrics.

All collectors are registered on the default registry at init through
promauto, so packages record by calling the helpers or the vectors directly:

	metrics.RecordRecommendation(metrics.OutcomeSuccess, time.Since(start))
	metrics.CacheHits.WithLabelValues(metrics.CachePosterMemory).Inc()

# Families

  - catalog_*: loaded catalog size and load time per source
  - recommendations_total, recommendation_duration_seconds: ranking requests
  - poster_*: upstream TMDB lookups and warmup progress
  - cache_hits_total, cache_misses_total: by cache_type
  - api_*: HTTP request count, latency and in-flight gauge
  - circuit_breaker_*: state, results and transitions of the TMDB breaker

Example queries:

	# recommendation p95
	histogram_quantile(0.95, rate(recommendation_duration_seconds_bucket[5m]))

	# poster cache hit ratio
	sum(rate(cache_hits_total{cache_type=~"poster_.*"}[5m]))
	  / (sum(rate(cache_hits_total{cache_type=~"poster_.*"}[5m])) + sum(rate(cache_misses_total{cache_type="poster_badger"}[5m])))
*/
package metrics
