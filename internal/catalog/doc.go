// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package catalog holds the movie catalog and its precomputed similarity
// matrix.
//
// A Catalog is built once at startup from a Source (JSON files or DuckDB)
// and is read-only afterwards. Lookups never mutate state:
//
//	idx, err := cat.ResolveIndex("The Dark Knight")  // *NotFoundError if absent
//	movie, err := cat.MovieAt(idx)                    // *IndexOutOfRangeError if outside [0, N)
//	row, err := cat.Row(idx)                          // N scores, idx itself included
//
// New rejects inputs that would break those lookups later: an empty movie
// list, a matrix that is not N x N, or a score that is NaN or infinite.
// Computing the matrix from movie text happens offline and is not part of
// this package.
package catalog
