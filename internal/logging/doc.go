// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package logging provides the process-wide zerolog logger for Reelmatch.
//
// Call Init once from main with the values from config.LoggingConfig. Until
// then a JSON logger at info level writes to stderr.
//
//	logging.Init(logging.Config{Level: "debug", Format: "console"})
//	logging.Info().Int("movies", n).Msg("Catalog loaded")
//
// Components keep their own child logger:
//
//	logger := logging.WithComponent("recommend")
//
// Request-scoped code logs through Ctx, which adds the request_id and
// correlation_id placed on the context by the HTTP middleware:
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("Poster lookup failed")
//
// SlogHandler adapts the logger to log/slog for the suture supervisor hook.
package logging
