// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package poster

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrInvalidMovieID is returned for ids that cannot exist upstream (<= 0).
	ErrInvalidMovieID = errors.New("invalid movie id")

	// ErrUnauthorized is returned when TMDB rejects the configured API key.
	ErrUnauthorized = errors.New("tmdb rejected the api key")

	// ErrRateLimited is returned when TMDB answers 429.
	ErrRateLimited = errors.New("tmdb rate limit exceeded")

	// ErrMovieNotFound is returned by TMDBClient.Movie for unknown ids.
	ErrMovieNotFound = errors.New("movie not found on tmdb")
)

// StatusError reports an unexpected upstream HTTP status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("tmdb returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("tmdb returned status %d: %s", e.StatusCode, e.Body)
}

// Resolver maps a TMDB movie id to a poster image URL. An empty URL with a
// nil error means no poster is available for the movie.
type Resolver interface {
	PosterURL(ctx context.Context, movieID int) (string, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, movieID int) (string, error)

// PosterURL calls f(ctx, movieID).
func (f ResolverFunc) PosterURL(ctx context.Context, movieID int) (string, error) {
	return f(ctx, movieID)
}

// NoopResolver never finds a poster. It stands in when TMDB is disabled.
type NoopResolver struct{}

// PosterURL always returns "".
func (NoopResolver) PosterURL(context.Context, int) (string, error) {
	return "", nil
}

// ResolveAll resolves ids concurrently, at most concurrency at a time.
// Movies whose lookup fails or has no poster map to "". The result holds an
// entry for every distinct id.
func ResolveAll(ctx context.Context, r Resolver, ids []int, concurrency int) map[int]string {
	out := make(map[int]string, len(ids))
	if len(ids) == 0 {
		return out
	}
	if concurrency < 1 {
		concurrency = 1
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)

	for _, id := range ids {
		mu.Lock()
		_, seen := out[id]
		if !seen {
			out[id] = ""
		}
		mu.Unlock()
		if seen {
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(id int) {
			defer wg.Done()
			defer func() { <-sem }()

			url, err := r.PosterURL(ctx, id)
			if err != nil || url == "" {
				return
			}
			mu.Lock()
			out[id] = url
			mu.Unlock()
		}(id)
	}

	wg.Wait()
	return out
}
