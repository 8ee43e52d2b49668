// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/reelmatch/internal/middleware"
)

// compressionLevel is the gzip/deflate level for JSON responses.
const compressionLevel = 5

// Router wires the Handler into a chi route tree.
type Router struct {
	handler        *Handler
	chiMiddleware  *ChiMiddleware
	requestTimeout time.Duration
	slowThreshold  time.Duration
}

// RouterOption customises a Router.
type RouterOption func(*Router)

// WithRequestTimeout bounds handler time on /api/v1 routes. Zero disables
// the timeout.
func WithRequestTimeout(d time.Duration) RouterOption {
	return func(r *Router) { r.requestTimeout = d }
}

// WithSlowRequestThreshold sets the latency above which the access log
// warns.
func WithSlowRequestThreshold(d time.Duration) RouterOption {
	return func(r *Router) { r.slowThreshold = d }
}

// NewRouter creates a Router. A nil mw selects DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, mw *ChiMiddleware, opts ...RouterOption) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	router := &Router{
		handler:       handler,
		chiMiddleware: mw,
		slowThreshold: middleware.DefaultSlowRequestThreshold,
	}
	for _, opt := range opts {
		opt(router)
	}
	return router
}

// chiMiddleware adapts http.HandlerFunc middleware to chi's r.Use shape.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Setup builds the route tree.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, in order. RequestID precedes AccessLog so log
	// lines carry the id.
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chiMiddleware(middleware.AccessLog(router.slowThreshold)))
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).NotFound("route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).Error(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(chimiddleware.Compress(compressionLevel, "application/json"))
		if router.requestTimeout > 0 {
			r.Use(chimiddleware.Timeout(router.requestTimeout))
		}

		r.Get("/movies", router.handler.Movies)
		r.Get("/movies/search", router.handler.SearchMovies)
		r.Get("/movies/{id}", router.handler.Movie)
		r.Get("/recommendations", router.handler.Recommendations)
		r.Get("/stats", router.handler.Stats)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
