// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/reelmatch/internal/poster"
)

// PosterWarmer prefetches posters. *poster.Warmer implements it.
type PosterWarmer interface {
	Warm(ctx context.Context, ids []int) (poster.WarmStats, error)
}

// PosterWarmupService resolves posters for the whole catalog once at
// startup so the first recommendation requests hit a warm cache.
type PosterWarmupService struct {
	warmer PosterWarmer
	ids    []int
	logger zerolog.Logger
	name   string
}

// NewPosterWarmupService creates the warmup service for the given movie ids.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPosterWarmupService(warmer PosterWarmer, ids []int, logger zerolog.Logger) *PosterWarmupService {
	return &PosterWarmupService{
		warmer: warmer,
		ids:    append([]int(nil), ids...),
		logger: logger.With().Str("service", "poster-warmup").Logger(),
		name:   "poster-warmup-service",
	}
}

// Serve implements suture.Service. A completed pass returns
// suture.ErrDoNotRestart so the supervisor does not warm again.
func (s *PosterWarmupService) Serve(ctx context.Context) error {
	s.logger.Info().Int("movies", len(s.ids)).Msg("poster warmup starting")

	stats, err := s.warmer.Warm(ctx, s.ids)
	if err != nil {
		if ctx.Err() != nil {
			s.logger.Info().Int("done", stats.Found+stats.Missing+stats.Failed).Msg("poster warmup interrupted")
			return ctx.Err()
		}
		return fmt.Errorf("poster warmup: %w", err)
	}

	s.logger.Info().
		Int("total", stats.Total).
		Int("found", stats.Found).
		Int("missing", stats.Missing).
		Int("failed", stats.Failed).
		Dur("duration", stats.Duration).
		Msg("poster warmup complete")
	return suture.ErrDoNotRestart
}

// String returns the service name for logging.
func (s *PosterWarmupService) String() string {
	return s.name
}
