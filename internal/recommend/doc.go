// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package recommend ranks movies by precomputed content similarity.
//
// # Ranking
//
// Recommender is the pure core. For a query title it:
//
//  1. resolves the title to its catalog index (first match wins)
//  2. reads that index's similarity row, N scores including itself
//  3. stable-sorts (index, score) pairs by score descending, so ties keep
//     ascending index order
//  4. removes the query by index match, wherever it landed
//  5. keeps the first K and resolves each to (title, id)
//
// The output is deterministic, never contains the query, has length
// min(K, N-1) and non-increasing scores.
//
// # Serving
//
// Engine wraps a Recommender for the HTTP layer. It applies DefaultK/MaxK,
// caches responses per (title, k) in an LRU, records Prometheus metrics and
// logs with a component logger:
//
//	engine, err := recommend.NewEngine(cat, recommend.DefaultConfig(), logging.Logger())
//	resp, err := engine.Recommend(ctx, recommend.Request{Title: "Avatar"})
//	if errors.Is(err, catalog.ErrNotFound) { ... }
//
// Poster URLs are not resolved here. Callers look them up by Recommendation.ID.
package recommend
