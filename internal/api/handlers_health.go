// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/poster"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// tmdbPingTimeout bounds the upstream check in Health.
const tmdbPingTimeout = 3 * time.Second

// HealthStatus is the payload of GET /health.
type HealthStatus struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	CatalogSize   int     `json:"catalog_size"`
	TMDBEnabled   bool    `json:"tmdb_enabled"`
	TMDBConnected *bool   `json:"tmdb_connected,omitempty"`
	PosterCircuit string  `json:"poster_circuit,omitempty"`
	Uptime        float64 `json:"uptime_seconds"`
}

// Health reports overall status. Poster problems mark the service degraded
// but never unhealthy, since recommendations work without posters.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:      "healthy",
		Version:     h.version,
		TMDBEnabled: h.tmdb != nil,
		Uptime:      time.Since(h.startTime).Seconds(),
	}
	if h.catalog != nil {
		status.CatalogSize = h.catalog.Len()
	}

	if h.tmdb != nil {
		ctx, cancel := context.WithTimeout(r.Context(), tmdbPingTimeout)
		connected := h.tmdb.Ping(ctx) == nil
		cancel()
		status.TMDBConnected = &connected
		if !connected {
			status.Status = "degraded"
		}
	}
	if h.breaker != nil {
		status.PosterCircuit = h.breaker.State()
		if status.PosterCircuit == "open" {
			status.Status = "degraded"
		}
	}
	if !h.ready() {
		status.Status = "unhealthy"
	}

	NewResponseWriter(w, r).Success(status)
}

// HealthLive answers 200 while the process is alive, regardless of
// dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady answers 200 once the catalog and engine are loaded, 503
// otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ready := h.ready()

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	NewResponseWriter(w, r).Status(statusCode, map[string]interface{}{
		"status": status,
		"ready":  ready,
	})
}

// ServiceStats is the payload of GET /stats.
type ServiceStats struct {
	Engine        recommend.EngineStats `json:"engine"`
	CatalogSize   int                   `json:"catalog_size"`
	PosterCircuit string                `json:"poster_circuit,omitempty"`
	PosterCache   *poster.CacheStats    `json:"poster_cache,omitempty"`
	Uptime        float64               `json:"uptime_seconds"`
}

// Stats reports engine counters and, when configured, poster cache counters.
// A failing cache count is logged and the poster_cache field is omitted.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.ready() {
		rw.ServiceUnavailable("catalog not loaded")
		return
	}

	stats := ServiceStats{
		Engine:      h.engine.Stats(),
		CatalogSize: h.catalog.Len(),
		Uptime:      time.Since(h.startTime).Seconds(),
	}
	if h.breaker != nil {
		stats.PosterCircuit = h.breaker.State()
	}
	if h.posterCache != nil {
		pc, err := h.posterCache.CacheStats(r.Context())
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("poster cache stats unavailable")
		} else {
			stats.PosterCache = &pc
		}
	}
	rw.Success(stats)
}
