// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/reelmatch/internal/validation"
)

// MoviesRequest represents the validated query parameters for GET /movies.
//
// Fields:
//   - Limit: Titles per page (1-1000, default 100)
//   - Offset: Catalog index to start from (>= 0)
type MoviesRequest struct {
	Limit  int `validate:"min=1,max=1000"`
	Offset int `validate:"min=0"`
}

// SearchRequest represents the validated query parameters for GET /movies/search.
type SearchRequest struct {
	Query string `validate:"notblank,max=200"`
	Limit int    `validate:"min=1,max=50"`
}

// RecommendationsRequest represents the validated query parameters for
// GET /recommendations.
//
// Fields:
//   - Title: Exact catalog title, case-sensitive
//   - K: Number of results (0 = server default, larger values are clamped)
//   - Posters: Resolve poster URLs per item (default true)
type RecommendationsRequest struct {
	Title   string `validate:"required,max=500"`
	K       int    `validate:"min=0"`
	Posters bool
}

// Default page sizes.
const (
	defaultMoviesLimit = 100
	defaultSearchLimit = 10
)

// queryParams collects parse failures so a handler can report every bad
// parameter at once, in the same shape as validation failures.
type queryParams struct {
	r      *http.Request
	fields []validation.FieldError
}

func newQueryParams(r *http.Request) *queryParams {
	return &queryParams{r: r}
}

func (q *queryParams) String(key string) string {
	return q.r.URL.Query().Get(key)
}

// Int returns the integer value of key, or def when the key is absent.
func (q *queryParams) Int(key string, def int) int {
	raw := strings.TrimSpace(q.r.URL.Query().Get(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		q.fail(key, "int", fmt.Sprintf("%s must be an integer", key))
		return def
	}
	return v
}

// Bool returns the boolean value of key, or def when the key is absent.
func (q *queryParams) Bool(key string, def bool) bool {
	raw := strings.TrimSpace(q.r.URL.Query().Get(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		q.fail(key, "bool", fmt.Sprintf("%s must be true or false", key))
		return def
	}
	return v
}

func (q *queryParams) fail(field, tag, msg string) {
	q.fields = append(q.fields, validation.FieldError{Field: field, Tag: tag, Message: msg})
}

// Validate returns parse failures if any, otherwise the struct's own
// validation result.
func (q *queryParams) Validate(req interface{}) error {
	if len(q.fields) > 0 {
		return &validation.Error{Fields: q.fields}
	}
	return validation.ValidateStruct(req)
}

func parseMoviesRequest(r *http.Request) (MoviesRequest, error) {
	q := newQueryParams(r)
	req := MoviesRequest{
		Limit:  q.Int("limit", defaultMoviesLimit),
		Offset: q.Int("offset", 0),
	}
	return req, q.Validate(&req)
}

func parseSearchRequest(r *http.Request) (SearchRequest, error) {
	q := newQueryParams(r)
	req := SearchRequest{
		Query: q.String("q"),
		Limit: q.Int("limit", defaultSearchLimit),
	}
	return req, q.Validate(&req)
}

func parseRecommendationsRequest(r *http.Request) (RecommendationsRequest, error) {
	q := newQueryParams(r)
	req := RecommendationsRequest{
		Title:   q.String("title"),
		K:       q.Int("k", 0),
		Posters: q.Bool("posters", true),
	}
	return req, q.Validate(&req)
}
