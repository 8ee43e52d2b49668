// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"

	"github.com/tomtom215/reelmatch/internal/validation"
)

// Validate checks struct tag constraints first, then the cross-field rules
// the tags cannot express.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	validators := []func() error{
		c.validateCatalog,
		c.validateRecommend,
		c.validateTMDB,
		c.validatePosterCache,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateCatalog() error {
	switch c.Catalog.Source {
	case CatalogSourceJSON:
		if c.Catalog.MoviesPath == "" || c.Catalog.SimilarityPath == "" {
			return fmt.Errorf("CATALOG_MOVIES_PATH and CATALOG_SIMILARITY_PATH are required when CATALOG_SOURCE=json")
		}
	case CatalogSourceDuckDB:
		if c.Catalog.DuckDBPath == "" {
			return fmt.Errorf("CATALOG_DUCKDB_PATH is required when CATALOG_SOURCE=duckdb")
		}
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.DefaultK > c.Recommend.MaxK {
		return fmt.Errorf("RECOMMEND_DEFAULT_K (%d) must not exceed RECOMMEND_MAX_K (%d)",
			c.Recommend.DefaultK, c.Recommend.MaxK)
	}
	if c.Recommend.CacheEnabled && c.Recommend.CacheTTL <= 0 {
		return fmt.Errorf("RECOMMEND_CACHE_TTL must be positive when the response cache is enabled")
	}
	return nil
}

func (c *Config) validateTMDB() error {
	if c.TMDB.Enabled && c.TMDB.APIKey == "" {
		return fmt.Errorf("TMDB_API_KEY is required when TMDB is enabled (set TMDB_ENABLED=false to serve without posters)")
	}
	return nil
}

func (c *Config) validatePosterCache() error {
	pc := c.PosterCache
	if !pc.Enabled {
		return nil
	}
	if !pc.InMemory && pc.Path == "" {
		return fmt.Errorf("POSTER_CACHE_PATH is required unless POSTER_CACHE_IN_MEMORY=true")
	}
	if pc.TTL <= 0 || pc.NegativeTTL <= 0 {
		return fmt.Errorf("POSTER_CACHE_TTL and POSTER_CACHE_NEGATIVE_TTL must be positive")
	}
	return nil
}
