// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/reelmatch/internal/catalog"
)

// MovieSummary is one entry of the title selection list.
type MovieSummary struct {
	Index int    `json:"index"`
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// MovieDetail is the payload of GET /movies/{id}.
type MovieDetail struct {
	Index     int     `json:"index"`
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	Overview  string  `json:"overview,omitempty"`
	PosterURL *string `json:"poster_url"`
}

// Movies lists catalog titles in catalog order, paginated.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.ready() {
		rw.ServiceUnavailable("catalog not loaded")
		return
	}

	req, err := parseMoviesRequest(r)
	if err != nil {
		writeError(rw, err)
		return
	}

	total := h.catalog.Len()
	start := min(req.Offset, total)
	end := min(start+req.Limit, total)

	items := make([]MovieSummary, 0, end-start)
	for i := start; i < end; i++ {
		m, err := h.catalog.MovieAt(i)
		if err != nil {
			writeError(rw, err)
			return
		}
		items = append(items, MovieSummary{Index: i, ID: m.ID, Title: m.Title})
	}

	rw.SuccessWithPagination(items, &PaginationMeta{
		Total:   total,
		Count:   len(items),
		Offset:  req.Offset,
		Limit:   req.Limit,
		HasMore: end < total,
	})
}

// SearchMovies autocompletes titles by case-insensitive prefix.
func (h *Handler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.ready() {
		rw.ServiceUnavailable("catalog not loaded")
		return
	}

	req, err := parseSearchRequest(r)
	if err != nil {
		writeError(rw, err)
		return
	}

	matches := h.catalog.SearchTitles(req.Query, req.Limit)
	items := make([]MovieSummary, 0, len(matches))
	for _, m := range matches {
		items = append(items, MovieSummary{Index: m.Index, ID: m.Movie.ID, Title: m.Movie.Title})
	}
	rw.Success(items)
}

// Movie returns one movie by TMDB id, with its poster URL or null.
func (h *Handler) Movie(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.ready() {
		rw.ServiceUnavailable("catalog not loaded")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		rw.BadRequest("movie id must be a positive integer")
		return
	}

	movie, idx, err := h.catalog.MovieByID(id)
	if err != nil {
		writeError(rw, err)
		return
	}

	rw.Success(movieDetail(movie, idx, h.posterURL(r.Context(), movie.ID)))
}

func movieDetail(m catalog.Movie, idx int, posterURL *string) MovieDetail {
	return MovieDetail{
		Index:     idx,
		ID:        m.ID,
		Title:     m.Title,
		Overview:  m.Overview,
		PosterURL: posterURL,
	}
}
