// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultPosterGCInterval is used when no interval is configured.
const DefaultPosterGCInterval = 10 * time.Minute

// ValueLogCollector reclaims space in a Badger value log.
// *poster.BadgerStore implements it.
type ValueLogCollector interface {
	RunGC() error
}

// PosterCacheGCService periodically runs Badger value-log GC on the poster
// cache. Expired poster entries only free disk space once GC rewrites the
// log files holding them.
type PosterCacheGCService struct {
	store    ValueLogCollector
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewPosterCacheGCService creates the GC service. A non-positive interval
// selects DefaultPosterGCInterval.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPosterCacheGCService(store ValueLogCollector, interval time.Duration, logger zerolog.Logger) *PosterCacheGCService {
	if interval <= 0 {
		interval = DefaultPosterGCInterval
	}
	return &PosterCacheGCService{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("service", "poster-cache-gc").Logger(),
		name:     "poster-cache-gc-service",
	}
}

// Serve implements suture.Service. GC failures are logged; they never stop
// the loop.
func (s *PosterCacheGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Debug().Dur("interval", s.interval).Msg("poster cache gc running")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.store.RunGC(); err != nil {
				s.logger.Warn().Err(err).Msg("poster cache gc failed")
				continue
			}
			s.logger.Debug().Dur("duration", time.Since(start)).Msg("poster cache gc complete")
		}
	}
}

// String returns the service name for logging.
func (s *PosterCacheGCService) String() string {
	return s.name
}
