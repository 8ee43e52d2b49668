// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package cache provides the in-process data structures shared by the
recommendation engine, the poster resolver and the catalog.

# LRU

LRU is a generic, thread-safe least recently used cache with TTL expiry:

	c := cache.NewLRU[int, string](10000, 24*time.Hour)
	c.Add(603, "https://image.tmdb.org/t/p/w500/abc.jpg")
	url, ok := c.Get(603)

The recommend engine caches whole responses keyed by (title, k). The
poster resolver keeps recently resolved URLs in front of Badger.

# Trie

Trie is a generic prefix tree used for title autocomplete:

	t := cache.NewTrie[int]()
	t.Insert("The Matrix", 42)
	matches := t.AutocompleteWithLimit("the m", 5)

Both structures are safe for concurrent use.
*/
package cache
