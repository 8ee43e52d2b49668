// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"

	"github.com/tomtom215/reelmatch/internal/poster"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// RecommendationItem is one ranked movie with its poster.
type RecommendationItem struct {
	Rank      int     `json:"rank"`
	Index     int     `json:"index"`
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	Score     float64 `json:"score"`
	PosterURL *string `json:"poster_url"`
}

// RecommendationsResponse is the payload of GET /recommendations.
type RecommendationsResponse struct {
	Query    recommend.QueryMovie `json:"query"`
	Items    []RecommendationItem `json:"items"`
	K        int                  `json:"k"`
	CacheHit bool                 `json:"cache_hit"`
}

// Recommendations ranks the movies most similar to the title query
// parameter. Posters are resolved concurrently after ranking; a missing or
// failed poster is null and never fails the request.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.ready() {
		rw.ServiceUnavailable("catalog not loaded")
		return
	}

	req, err := parseRecommendationsRequest(r)
	if err != nil {
		writeError(rw, err)
		return
	}

	resp, err := h.engine.Recommend(r.Context(), recommend.Request{
		Title: req.Title,
		K:     req.K,
	})
	if err != nil {
		writeError(rw, err)
		return
	}

	var posters map[int]string
	if req.Posters && len(resp.Items) > 0 {
		ids := make([]int, len(resp.Items))
		for i, item := range resp.Items {
			ids[i] = item.ID
		}
		posters = poster.ResolveAll(r.Context(), h.posters, ids, h.posterConcurrency)
	}

	items := make([]RecommendationItem, len(resp.Items))
	for i, rec := range resp.Items {
		items[i] = RecommendationItem{
			Rank:  rec.Rank,
			Index: rec.Index,
			ID:    rec.ID,
			Title: rec.Title,
			Score: rec.Score,
		}
		if url := posters[rec.ID]; url != "" {
			items[i].PosterURL = &url
		}
	}

	rw.Success(RecommendationsResponse{
		Query:    resp.Query,
		Items:    items,
		K:        resp.Metadata.K,
		CacheHit: resp.Metadata.CacheHit,
	})
}
