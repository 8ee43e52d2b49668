// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"cmp"
	"fmt"
	"slices"
)

// DefaultK is the number of recommendations Recommend returns.
const DefaultK = 5

// Recommender ranks catalog movies by similarity to a query title. It holds
// no mutable state and is safe for concurrent use.
type Recommender struct {
	store Store
}

// NewRecommender creates a Recommender over store.
func NewRecommender(store Store) *Recommender {
	return &Recommender{store: store}
}

// Recommend returns up to DefaultK movies most similar to title.
func (r *Recommender) Recommend(title string) ([]Recommendation, error) {
	return r.RecommendK(title, DefaultK)
}

// RecommendK returns up to k movies most similar to title, best first.
//
// All N scores of the query's row are ordered by score descending with a
// stable sort, so equal scores keep ascending catalog index order. The
// query itself is then removed by index, not by assuming it ranks first,
// and the first k survivors are returned. An unknown title yields an error
// matching catalog.ErrNotFound. k <= 0 yields an empty result.
func (r *Recommender) RecommendK(title string, k int) ([]Recommendation, error) {
	queryIdx, err := r.store.ResolveIndex(title)
	if err != nil {
		return nil, err
	}

	row, err := r.store.Row(queryIdx)
	if err != nil {
		return nil, fmt.Errorf("read similarity row %d: %w", queryIdx, err)
	}

	ranked := rank(row, queryIdx, k)

	out := make([]Recommendation, len(ranked))
	for i, c := range ranked {
		movie, err := r.store.MovieAt(c.index)
		if err != nil {
			return nil, fmt.Errorf("resolve ranked index %d: %w", c.index, err)
		}
		out[i] = Recommendation{
			Rank:  i + 1,
			Index: c.index,
			ID:    movie.ID,
			Title: movie.Title,
			Score: c.score,
		}
	}
	return out, nil
}

type candidate struct {
	index int
	score float64
}

// rank orders row by score descending (ties by index ascending), drops
// exclude and keeps at most k entries.
func rank(row []float64, exclude, k int) []candidate {
	if k <= 0 {
		return []candidate{}
	}

	pairs := make([]candidate, len(row))
	for i, s := range row {
		pairs[i] = candidate{index: i, score: s}
	}

	slices.SortStableFunc(pairs, func(a, b candidate) int {
		return cmp.Compare(b.score, a.score)
	})

	out := make([]candidate, 0, min(k, len(pairs)))
	for _, c := range pairs {
		if c.index == exclude {
			continue
		}
		out = append(out, c)
		if len(out) == k {
			break
		}
	}
	return out
}
