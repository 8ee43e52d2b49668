// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"fmt"
	"math"

	"github.com/tomtom215/reelmatch/internal/cache"
)

// Movie is one catalog entry. ID is the TMDB movie id.
type Movie struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Overview string `json:"overview,omitempty"`
}

// Catalog is the immutable movie list plus its N x N similarity matrix.
// Index i addresses both movies[i] and row/column i of the matrix. A
// Catalog never changes after New returns, so it may be shared between
// goroutines without locking.
type Catalog struct {
	movies  []Movie
	matrix  [][]float64
	byTitle map[string]int
	byID    map[int]int
	titles  *cache.Trie[int]
}

// New validates movies and matrix and builds the lookup indexes. Both
// inputs are copied. The matrix must be len(movies) rows of len(movies)
// finite scores. Duplicate titles are allowed; title lookups resolve to
// the first occurrence.
func New(movies []Movie, matrix [][]float64) (*Catalog, error) {
	n := len(movies)
	if n == 0 {
		return nil, ErrEmptyCatalog
	}
	if len(matrix) != n {
		return nil, fmt.Errorf("%w: %d movies but %d matrix rows", ErrDimensionMismatch, n, len(matrix))
	}

	c := &Catalog{
		movies:  make([]Movie, n),
		matrix:  make([][]float64, n),
		byTitle: make(map[string]int, n),
		byID:    make(map[int]int, n),
		titles:  cache.NewTrieWithOptions[int](false, 10),
	}
	copy(c.movies, movies)

	for i, row := range matrix {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d scores, want %d", ErrDimensionMismatch, i, len(row), n)
		}
		for j, s := range row {
			if math.IsNaN(s) || math.IsInf(s, 0) {
				return nil, fmt.Errorf("%w: matrix[%d][%d] = %v", ErrInvalidScore, i, j, s)
			}
		}
		c.matrix[i] = append([]float64(nil), row...)
	}

	for i, m := range c.movies {
		if _, dup := c.byTitle[m.Title]; !dup {
			c.byTitle[m.Title] = i
		}
		if _, dup := c.byID[m.ID]; !dup {
			c.byID[m.ID] = i
		}
		c.titles.Insert(m.Title, i)
	}
	return c, nil
}

// Len is the number of movies N.
func (c *Catalog) Len() int {
	return len(c.movies)
}

// ResolveIndex returns the index of the first movie whose title equals
// title exactly. Matching is case sensitive.
func (c *Catalog) ResolveIndex(title string) (int, error) {
	if i, ok := c.byTitle[title]; ok {
		return i, nil
	}
	return -1, &NotFoundError{Title: title}
}

// MovieAt returns the movie at index.
func (c *Catalog) MovieAt(index int) (Movie, error) {
	if index < 0 || index >= len(c.movies) {
		return Movie{}, &IndexOutOfRangeError{Index: index, Size: len(c.movies)}
	}
	return c.movies[index], nil
}

// Row returns the similarity scores of movie index against every movie,
// the movie itself included. The slice is shared and must not be modified.
func (c *Catalog) Row(index int) ([]float64, error) {
	if index < 0 || index >= len(c.matrix) {
		return nil, &IndexOutOfRangeError{Index: index, Size: len(c.matrix)}
	}
	return c.matrix[index], nil
}

// MovieByID looks a movie up by its TMDB id and returns its index too.
func (c *Catalog) MovieByID(id int) (Movie, int, error) {
	i, ok := c.byID[id]
	if !ok {
		return Movie{}, -1, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return c.movies[i], i, nil
}

// Movies returns a copy of the catalog in index order.
func (c *Catalog) Movies() []Movie {
	return append([]Movie(nil), c.movies...)
}

// TitleMatch is one SearchTitles result with its catalog index.
type TitleMatch struct {
	Index int
	Movie Movie
}

// SearchTitles returns up to limit movies whose title starts with prefix,
// ignoring case. Shorter titles come first.
func (c *Catalog) SearchTitles(prefix string, limit int) []TitleMatch {
	matches := c.titles.AutocompleteWithLimit(prefix, limit)
	out := make([]TitleMatch, len(matches))
	for i, m := range matches {
		out[i] = TitleMatch{Index: m.Data, Movie: c.movies[m.Data]}
	}
	return out
}
