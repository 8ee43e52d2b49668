// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
tmdb.go - TMDB movie details client

Fetches /3/movie/{id} and turns its poster_path into a full image URL.

API Reference: https://developer.themoviedb.org/reference/movie-details
*/

package poster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// maxErrorBody bounds how much of an error response is kept in StatusError.
const maxErrorBody = 512

// TMDBMovie is the subset of the movie details payload the service uses.
type TMDBMovie struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Overview    string `json:"overview"`
	PosterPath  string `json:"poster_path"`
	ReleaseDate string `json:"release_date"`
}

// TMDBClient talks to the TMDB v3 API. Outbound calls share one token
// bucket limiter.
type TMDBClient struct {
	baseURL      string
	imageBaseURL string
	apiKey       string
	language     string
	httpClient   *http.Client
	limiter      *rate.Limiter
}

var _ Resolver = (*TMDBClient)(nil)

// NewTMDBClient creates a client from cfg. The API key is taken from cfg
// only; it is never read from the environment here.
func NewTMDBClient(cfg *config.TMDBConfig) *TMDBClient {
	language := cfg.Language
	if language == "" {
		language = "en-US"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &TMDBClient{
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		imageBaseURL: strings.TrimSuffix(cfg.ImageBaseURL, "/"),
		apiKey:       cfg.APIKey,
		language:     language,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
	}
}

// Movie fetches movie details. Unknown ids return ErrMovieNotFound.
func (c *TMDBClient) Movie(ctx context.Context, movieID int) (*TMDBMovie, error) {
	if movieID <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMovieID, movieID)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("tmdb rate limiter: %w", err)
	}

	resp, err := c.doRequest(ctx, "/3/movie/"+strconv.Itoa(movieID))
	if err != nil {
		return nil, fmt.Errorf("tmdb movie %d request failed: %w", movieID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %d", ErrMovieNotFound, movieID)
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)) //nolint:errcheck // best-effort error context
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var movie TMDBMovie
	if err := json.NewDecoder(resp.Body).Decode(&movie); err != nil {
		return nil, fmt.Errorf("failed to decode tmdb movie %d: %w", movieID, err)
	}
	return &movie, nil
}

// PosterURL resolves the poster image URL for movieID. Movies TMDB does not
// know, or that have no poster_path, resolve to "".
func (c *TMDBClient) PosterURL(ctx context.Context, movieID int) (string, error) {
	start := time.Now()

	movie, err := c.Movie(ctx, movieID)
	switch {
	case errors.Is(err, ErrMovieNotFound):
		metrics.RecordPosterLookup(metrics.PosterMissing, time.Since(start))
		return "", nil
	case err != nil:
		metrics.RecordPosterLookup(metrics.PosterError, time.Since(start))
		return "", err
	}

	u := c.ImageURL(movie.PosterPath)
	if u == "" {
		metrics.RecordPosterLookup(metrics.PosterMissing, time.Since(start))
	} else {
		metrics.RecordPosterLookup(metrics.PosterFound, time.Since(start))
	}
	return u, nil
}

// ImageURL joins a poster_path onto the configured image base.
func (c *TMDBClient) ImageURL(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	return c.imageBaseURL + "/" + strings.TrimPrefix(posterPath, "/")
}

// Ping checks that the API key is accepted.
func (c *TMDBClient) Ping(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("tmdb rate limiter: %w", err)
	}
	resp, err := c.doRequest(ctx, "/3/configuration")
	if err != nil {
		return fmt.Errorf("tmdb ping failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		return &StatusError{StatusCode: resp.StatusCode}
	}
}

func (c *TMDBClient) doRequest(ctx context.Context, path string) (*http.Response, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("language", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// *url.Error embeds the request URL, which carries the API key.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			return nil, uerr.Err
		}
		return nil, err
	}
	return resp, nil
}
