// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package main is the entry point for the Reelmatch server.

Reelmatch recommends movies similar to a chosen title from a precomputed
content-similarity matrix and decorates the results with TMDB posters.

# Application Architecture

	RootSupervisor ("reelmatch")
	├── DataSupervisor ("data-layer")
	│   └── Poster cache GC (on-disk Badger cache only)
	├── BackgroundSupervisor ("background-layer")
	│   └── Poster warmup (optional)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Initialization order:

 1. Configuration: Koanf v2 (defaults, optional YAML, environment)
 2. Logging: zerolog
 3. Catalog: JSON bundle or DuckDB tables, validated before serving
 4. Recommendation engine over the catalog
 5. Poster chain: memory LRU, Badger, circuit breaker, TMDB client
 6. Supervisor tree and HTTP server

# Configuration

	HTTP_PORT=8501
	CATALOG_SOURCE=json                     # json or duckdb
	CATALOG_MOVIES_PATH=/data/movies.json
	CATALOG_SIMILARITY_PATH=/data/similarity.json
	CATALOG_DUCKDB_PATH=/data/reelmatch.duckdb
	TMDB_API_KEY=<key>                      # required unless TMDB_ENABLED=false
	POSTER_CACHE_PATH=/data/posters
	POSTER_WARMUP_ENABLED=false
	LOG_LEVEL=info
	LOG_FORMAT=json

A missing or invalid catalog stops startup; there is no fallback that
recomputes similarity.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains
in-flight requests and the poster cache is closed before exit.
*/
package main
