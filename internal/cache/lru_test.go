// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package cache

import (
	"strconv"
	"sync"
	"testing"
	"time"
)

func TestLRU_BasicOperations(t *testing.T) {
	c := NewLRU[string, int](3, time.Minute)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)

	for key, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		got, ok := c.Get(key)
		if !ok || got != want {
			t.Errorf("Get(%q) = %d, %v; want %d, true", key, got, ok, want)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Len = %d, want 3", c.Len())
	}
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRU[string, int](3, time.Minute)
	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)

	c.Get("a")
	c.Add("d", 4)

	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("expected %q to be present", key)
		}
	}
	if s := c.Stats(); s.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", s.Evictions)
	}
}

func TestLRU_Expiry(t *testing.T) {
	c := NewLRU[int, string](10, time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Add(1, "default ttl")
	c.AddWithTTL(2, "short ttl", time.Second)

	now = now.Add(2 * time.Second)
	if _, ok := c.Get(2); ok {
		t.Error("entry 2 should have expired")
	}
	if _, ok := c.Get(1); !ok {
		t.Error("entry 1 should still be live")
	}

	now = now.Add(time.Minute)
	if _, ok := c.Get(1); ok {
		t.Error("entry 1 should have expired")
	}
	if c.Len() != 0 {
		t.Errorf("expired entries should be removed on access, Len = %d", c.Len())
	}
}

func TestLRU_UpdateRefreshes(t *testing.T) {
	c := NewLRU[string, int](2, time.Minute)
	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("a", 10)
	c.Add("c", 3)

	if v, ok := c.Get("a"); !ok || v != 10 {
		t.Errorf("Get(a) = %d, %v; want 10, true", v, ok)
	}
	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted after a was refreshed")
	}
}

func TestLRU_Stats(t *testing.T) {
	c := NewLRU[string, int](5, time.Minute)
	c.Add("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("missing")

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 || s.Size != 1 {
		t.Errorf("Stats = %+v, want 2 hits, 1 miss, size 1", s)
	}
}

func TestLRU_Concurrent(t *testing.T) {
	c := NewLRU[string, int](100, time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				key := strconv.Itoa((g * 31) + i%150)
				c.Add(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 100 {
		t.Errorf("Len = %d exceeds capacity", c.Len())
	}
}

func TestHitRate(t *testing.T) {
	tests := []struct {
		name         string
		hits, misses int64
		want         float64
	}{
		{"no lookups", 0, 0, 0},
		{"all hits", 4, 0, 1},
		{"all misses", 0, 4, 0},
		{"mixed", 3, 1, 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HitRate(tt.hits, tt.misses); got != tt.want {
				t.Errorf("HitRate(%d, %d) = %v, want %v", tt.hits, tt.misses, got, tt.want)
			}
		})
	}
}
