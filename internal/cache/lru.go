// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package cache

import (
	"sync"
	"time"
)

type lruEntry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
	prev      *lruEntry[K, V]
	next      *lruEntry[K, V]
}

// LRU is a thread-safe least recently used cache with per-entry TTL.
// Get, Add and eviction are O(1): a map for lookup plus a doubly linked
// list with sentinels for recency order. Expired entries are dropped lazily.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[K]*lruEntry[K, V]
	head     *lruEntry[K, V] // head.next is most recent
	tail     *lruEntry[K, V] // tail.prev is least recent
	now      func() time.Time

	hits      int64
	misses    int64
	evictions int64
}

// NewLRU creates a cache holding at most capacity entries, each living ttl
// unless added with AddWithTTL.
func NewLRU[K comparable, V any](capacity int, ttl time.Duration) *LRU[K, V] {
	if capacity <= 0 {
		capacity = 10000
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	c := &LRU[K, V]{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[K]*lruEntry[K, V], capacity),
		head:     &lruEntry[K, V]{},
		tail:     &lruEntry[K, V]{},
		now:      time.Now,
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// Get returns the value for key and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.items[key]
	if !ok {
		c.misses++
		return zero, false
	}
	if c.now().After(e.expiresAt) {
		c.unlink(e)
		c.misses++
		return zero, false
	}
	c.unlinkList(e)
	c.pushFront(e)
	c.hits++
	return e.value, true
}

// Add inserts or refreshes key with the default TTL.
func (c *LRU[K, V]) Add(key K, value V) {
	c.AddWithTTL(key, value, c.ttl)
}

// AddWithTTL inserts or refreshes key with its own TTL.
func (c *LRU[K, V]) AddWithTTL(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(ttl)
	if e, ok := c.items[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.unlinkList(e)
		c.pushFront(e)
		return
	}

	e := &lruEntry[K, V]{key: key, value: value, expiresAt: expiresAt}
	c.pushFront(e)
	c.items[key] = e

	for len(c.items) > c.capacity {
		oldest := c.tail.prev
		if oldest == c.head {
			break
		}
		c.unlink(oldest)
		c.evictions++
	}
}

// Len counts entries, including expired ones not yet collected.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// LRUStats is a point-in-time snapshot of cache counters.
type LRUStats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
}

// HitRate is hits / (hits + misses), or 0 before any lookup.
func HitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

func (c *LRU[K, V]) Stats() LRUStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return LRUStats{Hits: c.hits, Misses: c.misses, Evictions: c.evictions, Size: len(c.items)}
}

// list helpers, called with mu held

func (c *LRU[K, V]) pushFront(e *lruEntry[K, V]) {
	e.prev = c.head
	e.next = c.head.next
	c.head.next.prev = e
	c.head.next = e
}

func (c *LRU[K, V]) unlinkList(e *lruEntry[K, V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
}

func (c *LRU[K, V]) unlink(e *lruEntry[K, V]) {
	c.unlinkList(e)
	delete(c.items, e.key)
}
