// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/validation"
)

// writeError maps domain errors onto HTTP responses. Anything unrecognised
// is logged and reported as a 500 without leaking the cause.
func writeError(rw *ResponseWriter, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		rw.ValidationError(verr.Error(), verr.Details())
	case errors.Is(err, catalog.ErrNotFound):
		rw.NotFound(err.Error())
	case errors.Is(err, recommend.ErrInvalidRequest):
		rw.ValidationError(err.Error(), nil)
	case errors.Is(err, context.DeadlineExceeded):
		rw.Error(http.StatusGatewayTimeout, ErrCodeTimeout, "request timed out")
	case errors.Is(err, context.Canceled):
		rw.ServiceUnavailable("request canceled")
	default:
		logging.Ctx(rw.r.Context()).Error().Err(err).Str("path", rw.r.URL.Path).Msg("request failed")
		rw.InternalError("internal error")
	}
}
