// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package config loads Reelmatch configuration with Koanf v2.
//
// Sources, lowest to highest precedence:
//
//  1. Built-in defaults (defaultConfig)
//  2. A YAML file: $CONFIG_PATH, ./config.yaml, ./config.yml or /etc/reelmatch/config.yaml
//  3. Environment variables, via an explicit name mapping
//
// Common environment variables:
//
//	TMDB_API_KEY             TMDB v3 API key, required while TMDB_ENABLED=true
//	TMDB_ENABLED             false serves recommendations without posters
//	CATALOG_SOURCE           json (default) or duckdb
//	CATALOG_MOVIES_PATH      movies.json for the json source
//	CATALOG_SIMILARITY_PATH  similarity.json for the json source
//	CATALOG_DUCKDB_PATH      database file for the duckdb source
//	HTTP_PORT                listen port (default 8501)
//	POSTER_CACHE_PATH        Badger directory for cached poster URLs
//	LOG_LEVEL, LOG_FORMAT    logging
//
// Example config.yaml:
//
//	server:
//	  port: 8080
//	catalog:
//	  source: duckdb
//	  duckdb_path: /var/lib/reelmatch/catalog.duckdb
//	tmdb:
//	  language: de-DE
//	poster_warmup:
//	  enabled: true
//	  concurrency: 8
//
// Validate runs go-playground/validator tags plus cross-field checks.
package config
