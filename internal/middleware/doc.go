// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package middleware provides HTTP middleware shared by the API router.

Key Components:

  - RequestID: X-Request-ID propagation plus request and correlation ids in
    the logging context
  - PrometheusMetrics: request count, latency and in-flight gauge labelled
    by chi route pattern
  - AccessLog: one structured log line per request; slow requests and 5xx
    responses are raised to warn and error

All three use the http.HandlerFunc -> http.HandlerFunc shape. The api
package adapts them to chi's r.Use:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.AccessLog(time.Second)))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

RequestID must run before AccessLog so log lines carry the request id.
PrometheusMetrics reads the route pattern after the handler returns, which
only works inside a chi router.
*/
package middleware
