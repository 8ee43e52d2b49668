// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package poster

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/reelmatch/internal/metrics"
)

// CircuitBreakerSettings tunes when the breaker opens and recovers.
type CircuitBreakerSettings struct {
	// MaxRequests is the number of trial requests allowed while half-open.
	MaxRequests uint32

	// Interval resets the closed-state counts.
	Interval time.Duration

	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration

	// MinRequests is the smallest sample that may trip the breaker.
	MinRequests uint32

	// FailureRatio trips the breaker once reached.
	FailureRatio float64
}

// DefaultCircuitBreakerSettings opens after 60% failures over at least 10
// requests and probes again after two minutes.
func DefaultCircuitBreakerSettings() CircuitBreakerSettings {
	return CircuitBreakerSettings{
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      2 * time.Minute,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// CircuitBreakerClient wraps an upstream Resolver so that a failing TMDB is
// not hammered while it is down. Rejected calls fail fast with
// gobreaker.ErrOpenState or gobreaker.ErrTooManyRequests.
type CircuitBreakerClient struct {
	upstream Resolver
	cb       *gobreaker.CircuitBreaker[string]
	name     string
	logger   zerolog.Logger
}

var _ Resolver = (*CircuitBreakerClient)(nil)

// NewCircuitBreakerClient wraps upstream in a breaker called name.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCircuitBreakerClient(upstream Resolver, name string, settings CircuitBreakerSettings, logger zerolog.Logger) *CircuitBreakerClient {
	c := &CircuitBreakerClient{
		upstream: upstream,
		name:     name,
		logger:   logger.With().Str("component", "circuit_breaker").Str("breaker", name).Logger(),
	}

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	c.cb = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        name,
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= settings.FailureRatio
			if shouldTrip {
				c.logger.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			c.logger.Info().Str("from", fromStr).Str("to", toStr).Msg("state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},

		// Caller cancellation and bad ids say nothing about TMDB's health.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, ErrInvalidMovieID)
		},
	})

	return c
}

// PosterURL resolves through the breaker.
func (c *CircuitBreakerClient) PosterURL(ctx context.Context, movieID int) (string, error) {
	return c.execute(func() (string, error) {
		return c.upstream.PosterURL(ctx, movieID)
	})
}

// State returns "closed", "half-open" or "open".
func (c *CircuitBreakerClient) State() string {
	return stateToString(c.cb.State())
}

// execute runs fn under the breaker and records the outcome.
func (c *CircuitBreakerClient) execute(fn func() (string, error)) (string, error) {
	result, err := c.cb.Execute(fn)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(c.name, "rejected").Inc()
			metrics.RecordPosterLookup(metrics.PosterRejected, 0)
			c.logger.Debug().Err(err).Msg("request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(c.name, "failure").Inc()
			counts := c.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.name).Set(float64(counts.ConsecutiveFailures))
		}
		return "", err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(c.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.name).Set(0)
	return result, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
