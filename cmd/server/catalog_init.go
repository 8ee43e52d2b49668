// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// loadCatalog reads and validates the catalog from the configured source.
// Any failure is fatal for startup.
func loadCatalog(ctx context.Context, cfg *config.CatalogConfig) (*catalog.Catalog, error) {
	start := time.Now()

	var (
		cat *catalog.Catalog
		err error
	)
	switch cfg.Source {
	case config.CatalogSourceDuckDB:
		cat, err = loadDuckDBCatalog(ctx, cfg.DuckDBPath)
	default:
		cat, err = catalog.JSONSource{
			MoviesPath:     cfg.MoviesPath,
			SimilarityPath: cfg.SimilarityPath,
		}.Load(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s catalog: %w", cfg.Source, err)
	}

	elapsed := time.Since(start)
	metrics.RecordCatalogLoad(cfg.Source, cat.Len(), elapsed)
	logging.Info().
		Str("source", cfg.Source).
		Int("movies", cat.Len()).
		Dur("duration", elapsed).
		Msg("Catalog loaded")
	return cat, nil
}

func loadDuckDBCatalog(ctx context.Context, path string) (*catalog.Catalog, error) {
	db, err := catalog.OpenDuckDB(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logging.Warn().Err(cerr).Msg("Failed to close DuckDB catalog")
		}
	}()
	return catalog.NewDuckDBSource(db).Load(ctx)
}
