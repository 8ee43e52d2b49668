// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package poster

import (
	"context"
	"testing"
	"time"
)

func newTestBadgerStore(t *testing.T, ttl, negativeTTL time.Duration) *BadgerStore {
	t.Helper()
	store, err := NewBadgerStore(BadgerStoreConfig{InMemory: true, TTL: ttl, NegativeTTL: negativeTTL})
	if err != nil {
		t.Fatalf("NewBadgerStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBadgerStore_PutGet(t *testing.T) {
	store := newTestBadgerStore(t, time.Hour, time.Minute)
	ctx := context.Background()

	if _, found, err := store.Get(ctx, 19995); err != nil || found {
		t.Fatalf("Get on empty store = found %v, err %v", found, err)
	}

	if err := store.Put(ctx, 19995, "https://image.tmdb.org/t/p/w500/a.jpg"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	url, found, err := store.Get(ctx, 19995)
	if err != nil || !found || url != "https://image.tmdb.org/t/p/w500/a.jpg" {
		t.Errorf("Get = %q, %v, %v", url, found, err)
	}
}

func TestBadgerStore_NegativeEntry(t *testing.T) {
	store := newTestBadgerStore(t, time.Hour, time.Minute)
	ctx := context.Background()

	if err := store.Put(ctx, 7, ""); err != nil {
		t.Fatalf("Put: %v", err)
	}
	url, found, err := store.Get(ctx, 7)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found || url != "" {
		t.Errorf("negative entry = %q, found %v; want \"\", true", url, found)
	}
}

func TestBadgerStore_TTLExpiry(t *testing.T) {
	// Badger TTLs have one-second resolution.
	store := newTestBadgerStore(t, time.Hour, time.Second)
	ctx := context.Background()

	if err := store.Put(ctx, 1, ""); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Put(ctx, 2, "https://img/2.jpg"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	time.Sleep(2100 * time.Millisecond)

	if _, found, _ := store.Get(ctx, 1); found {
		t.Error("negative entry should have expired")
	}
	if _, found, _ := store.Get(ctx, 2); !found {
		t.Error("positive entry expired early")
	}
}

func TestBadgerStore_Count(t *testing.T) {
	store := newTestBadgerStore(t, time.Hour, time.Hour)
	ctx := context.Background()

	for id, url := range map[int]string{1: "https://img/1.jpg", 2: "https://img/2.jpg", 3: ""} {
		if err := store.Put(ctx, id, url); err != nil {
			t.Fatalf("Put(%d): %v", id, err)
		}
	}

	pos, neg, err := store.Count(ctx)
	if err != nil || pos != 2 || neg != 1 {
		t.Fatalf("Count = %d, %d, %v; want 2, 1", pos, neg, err)
	}
}

func TestBadgerStore_RunGCInMemory(t *testing.T) {
	store := newTestBadgerStore(t, time.Hour, time.Hour)
	if err := store.RunGC(); err != nil {
		t.Errorf("RunGC: %v", err)
	}
}

func TestBadgerStore_OnDisk(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewBadgerStore(BadgerStoreConfig{Path: dir, TTL: time.Hour, NegativeTTL: time.Hour})
	if err != nil {
		t.Fatalf("NewBadgerStore: %v", err)
	}
	if err := store.Put(ctx, 603, "https://img/603.jpg"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewBadgerStore(BadgerStoreConfig{Path: dir, TTL: time.Hour, NegativeTTL: time.Hour})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	url, found, err := reopened.Get(ctx, 603)
	if err != nil || !found || url != "https://img/603.jpg" {
		t.Errorf("after reopen Get = %q, %v, %v", url, found, err)
	}
}

func TestNewBadgerStore_RequiresPath(t *testing.T) {
	if _, err := NewBadgerStore(BadgerStoreConfig{}); err == nil {
		t.Error("expected error without path or in-memory")
	}
}
