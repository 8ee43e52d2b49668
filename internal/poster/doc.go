// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package poster resolves TMDB movie ids to poster image URLs.

The production chain is:

	CachedResolver          memory LRU, then Badger
	  -> CircuitBreakerClient   gobreaker, fails fast while TMDB is down
	    -> TMDBClient           GET /3/movie/{id}, rate limited

Every layer implements Resolver. An empty URL means "no poster": TMDB has
no poster_path for the movie, or does not know the id. Those answers are
cached as negative entries with a shorter TTL.

CachedResolver.PosterURL never fails a caller because of TMDB. Upstream
errors are logged and turned into "", so a recommendation is always served
even when every poster is missing. CachedResolver.Lookup returns the
underlying error instead and is what Warmer uses to count failures.

Usage:

	client := poster.NewTMDBClient(&cfg.TMDB)
	breaker := poster.NewCircuitBreakerClient(client, "tmdb-api",
		poster.DefaultCircuitBreakerSettings(), logging.Logger())
	store, err := poster.NewBadgerStore(poster.BadgerStoreConfig{
		Path: cfg.PosterCache.Path, TTL: cfg.PosterCache.TTL, NegativeTTL: cfg.PosterCache.NegativeTTL,
	})
	resolver := poster.NewCachedResolver(breaker, store, poster.CachedResolverConfig{
		MemoryEntries: 10000, MemoryTTL: time.Hour, NegativeTTL: cfg.PosterCache.NegativeTTL,
	}, logging.Logger())

	urls := poster.ResolveAll(ctx, resolver, ids, 5)
*/
package poster
