// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package middleware

import (
	"net/http"
	"time"

	"github.com/tomtom215/reelmatch/internal/logging"
)

// DefaultSlowRequestThreshold is the latency above which requests are
// logged at warn level.
const DefaultSlowRequestThreshold = time.Second

// AccessLog logs one line per request through the request-scoped logger
// (so request_id and correlation_id are attached when RequestID ran
// first). Server errors log at error, slow requests at warn, the rest at
// debug.
func AccessLog(slowThreshold time.Duration) func(http.HandlerFunc) http.HandlerFunc {
	if slowThreshold <= 0 {
		slowThreshold = DefaultSlowRequestThreshold
	}
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapper := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next(wrapper, r)

			duration := time.Since(start)
			logger := logging.Ctx(r.Context())

			event := logger.Debug()
			switch {
			case wrapper.statusCode >= http.StatusInternalServerError:
				event = logger.Error()
			case duration > slowThreshold:
				event = logger.Warn().Dur("threshold", slowThreshold)
			}

			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", wrapper.statusCode).
				Int64("duration_ms", duration.Milliseconds()).
				Str("remote_addr", r.RemoteAddr).
				Msg("http request")
		}
	}
}
