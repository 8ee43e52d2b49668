// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/reelmatch/internal/logging"
)

// OpenDuckDB opens (creating if needed) a DuckDB database file.
// Use ":memory:" for a throwaway database.
func OpenDuckDB(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping duckdb %s: %w", path, err)
	}
	return db, nil
}

// DuckDBSource stores the catalog in two tables:
//
//	catalog_movies(idx, id, title, overview)   one row per movie, idx = matrix index
//	catalog_similarity(row_idx, scores)        one DOUBLE[] row of N scores per movie
//
// Both tables are written with the DuckDB appender, so saving a catalog of a
// few thousand movies is a bulk load rather than N*N inserts.
type DuckDBSource struct {
	db *sql.DB
}

// NewDuckDBSource wraps an open database. The caller owns db.
func NewDuckDBSource(db *sql.DB) *DuckDBSource {
	return &DuckDBSource{db: db}
}

// InitSchema creates the catalog tables.
func (s *DuckDBSource) InitSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS catalog_movies (
			idx INTEGER PRIMARY KEY,
			id BIGINT NOT NULL,
			title VARCHAR NOT NULL,
			overview VARCHAR
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create catalog_movies table: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS catalog_similarity (
			row_idx INTEGER PRIMARY KEY,
			scores DOUBLE[] NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create catalog_similarity table: %w", err)
	}
	return nil
}

// Save replaces the stored catalog with c in a single transaction.
func (s *DuckDBSource) Save(ctx context.Context, c *Catalog) (err error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, `BEGIN TRANSACTION`); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_, _ = conn.ExecContext(context.Background(), `ROLLBACK`)
		}
	}()

	if _, err := conn.ExecContext(ctx, `DELETE FROM catalog_similarity`); err != nil {
		return fmt.Errorf("failed to clear catalog_similarity: %w", err)
	}
	if _, err := conn.ExecContext(ctx, `DELETE FROM catalog_movies`); err != nil {
		return fmt.Errorf("failed to clear catalog_movies: %w", err)
	}

	err = conn.Raw(func(driverConn any) error {
		dc, ok := driverConn.(driver.Conn)
		if !ok {
			return fmt.Errorf("unexpected duckdb driver connection %T", driverConn)
		}
		if err := appendMovies(ctx, dc, c.movies); err != nil {
			return err
		}
		return appendScores(ctx, dc, c.matrix)
	})
	if err != nil {
		return err
	}

	if _, err := conn.ExecContext(ctx, `COMMIT`); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}

	logging.Info().Int("movies", len(c.movies)).Msg("Catalog saved to DuckDB")
	return nil
}

func appendMovies(ctx context.Context, dc driver.Conn, movies []Movie) error {
	app, err := duckdb.NewAppenderFromConn(dc, "", "catalog_movies")
	if err != nil {
		return fmt.Errorf("failed to create catalog_movies appender: %w", err)
	}
	for i, m := range movies {
		if err := ctx.Err(); err != nil {
			_ = app.Close()
			return err
		}
		var overview any
		if m.Overview != "" {
			overview = m.Overview
		}
		if err := app.AppendRow(int32(i), int64(m.ID), m.Title, overview); err != nil {
			_ = app.Close()
			return fmt.Errorf("failed to append movie %d: %w", i, err)
		}
	}
	if err := app.Close(); err != nil {
		return fmt.Errorf("failed to flush catalog_movies: %w", err)
	}
	return nil
}

func appendScores(ctx context.Context, dc driver.Conn, matrix [][]float64) error {
	app, err := duckdb.NewAppenderFromConn(dc, "", "catalog_similarity")
	if err != nil {
		return fmt.Errorf("failed to create catalog_similarity appender: %w", err)
	}
	for i, row := range matrix {
		if err := ctx.Err(); err != nil {
			_ = app.Close()
			return err
		}
		if err := app.AppendRow(int32(i), row); err != nil {
			_ = app.Close()
			return fmt.Errorf("failed to append scores for row %d: %w", i, err)
		}
	}
	if err := app.Close(); err != nil {
		return fmt.Errorf("failed to flush catalog_similarity: %w", err)
	}
	return nil
}

// Load implements Source.
func (s *DuckDBSource) Load(ctx context.Context) (*Catalog, error) {
	movies, err := s.loadMovies(ctx)
	if err != nil {
		return nil, err
	}

	matrix, err := s.loadMatrix(ctx, len(movies))
	if err != nil {
		return nil, err
	}
	return New(movies, matrix)
}

func (s *DuckDBSource) loadMovies(ctx context.Context) ([]Movie, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT idx, id, title, overview FROM catalog_movies ORDER BY idx
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog_movies: %w", err)
	}
	defer rows.Close()

	var movies []Movie
	for rows.Next() {
		var (
			idx      int
			m        Movie
			overview sql.NullString
		)
		if err := rows.Scan(&idx, &m.ID, &m.Title, &overview); err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		if idx != len(movies) {
			return nil, fmt.Errorf("catalog_movies index gap: got idx %d at position %d", idx, len(movies))
		}
		m.Overview = overview.String
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog_movies: %w", err)
	}
	return movies, nil
}

func (s *DuckDBSource) loadMatrix(ctx context.Context, n int) ([][]float64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT row_idx, scores FROM catalog_similarity ORDER BY row_idx
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog_similarity: %w", err)
	}
	defer rows.Close()

	matrix := make([][]float64, 0, n)
	for rows.Next() {
		var (
			i   int
			raw any
		)
		if err := rows.Scan(&i, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan scores: %w", err)
		}
		if i != len(matrix) || i >= n {
			return nil, fmt.Errorf("%w: unexpected similarity row %d at position %d of %d", ErrDimensionMismatch, i, len(matrix), n)
		}
		row, err := scoresRow(raw, n)
		if err != nil {
			return nil, fmt.Errorf("similarity row %d: %w", i, err)
		}
		matrix = append(matrix, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog_similarity: %w", err)
	}
	if len(matrix) != n {
		return nil, fmt.Errorf("%w: %d similarity rows for %d movies", ErrDimensionMismatch, len(matrix), n)
	}
	return matrix, nil
}

// scoresRow converts a scanned DOUBLE[] value into n float64 scores.
func scoresRow(raw any, n int) ([]float64, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected scores type %T", raw)
	}
	if len(list) != n {
		return nil, fmt.Errorf("%w: %d scores, want %d", ErrDimensionMismatch, len(list), n)
	}
	row := make([]float64, n)
	for j, v := range list {
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("%w: score %d is %T", ErrInvalidScore, j, v)
		}
		row[j] = f
	}
	return row, nil
}
