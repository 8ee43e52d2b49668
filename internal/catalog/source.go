// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// Source produces a validated Catalog, or fails before anything serves.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

// JSONSource reads the precomputed bundle from two files:
//
//	movies.json      [{"id": 19995, "title": "Avatar", "overview": "..."}, ...]
//	similarity.json  [[1.0, 0.08, ...], [0.08, 1.0, ...], ...]
//
// Both files are required. There is no fallback that recomputes scores.
type JSONSource struct {
	MoviesPath     string
	SimilarityPath string
}

// Load implements Source.
func (s JSONSource) Load(ctx context.Context) (*Catalog, error) {
	var movies []Movie
	if err := decodeFile(s.MoviesPath, &movies); err != nil {
		return nil, fmt.Errorf("failed to read movies: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var matrix [][]float64
	if err := decodeFile(s.SimilarityPath, &matrix); err != nil {
		return nil, fmt.Errorf("failed to read similarity matrix: %w", err)
	}

	return New(movies, matrix)
}

func decodeFile(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// WriteJSON writes c as a movies/similarity file pair readable by JSONSource.
func WriteJSON(c *Catalog, moviesPath, similarityPath string) error {
	if err := encodeFile(moviesPath, c.movies); err != nil {
		return fmt.Errorf("failed to write movies: %w", err)
	}
	if err := encodeFile(similarityPath, c.matrix); err != nil {
		return fmt.Errorf("failed to write similarity matrix: %w", err)
	}
	return nil
}

func encodeFile(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := json.NewEncoder(f).Encode(v); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
