// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package poster

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

const badgerPosterKeyPrefix = "poster:"

// BadgerStoreConfig configures a BadgerStore.
type BadgerStoreConfig struct {
	// Path is the Badger directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps everything in RAM. Used by tests and ephemeral deployments.
	InMemory bool

	// TTL applies to entries with a poster URL.
	TTL time.Duration

	// NegativeTTL applies to entries recording that no poster exists.
	NegativeTTL time.Duration
}

// BadgerStore persists resolved poster URLs across restarts. Each entry
// expires through Badger's TTL; an empty URL is a negative entry that
// remembers "no poster" for the shorter NegativeTTL.
type BadgerStore struct {
	db          *badger.DB
	ttl         time.Duration
	negativeTTL time.Duration
}

type storedPoster struct {
	URL       string    `json:"url"`
	FetchedAt time.Time `json:"fetched_at"`
}

// NewBadgerStore opens (or creates) the poster store.
//
// Example:
//
//	store, err := NewBadgerStore(BadgerStoreConfig{Path: "/data/posters", TTL: 7 * 24 * time.Hour})
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
func NewBadgerStore(cfg BadgerStoreConfig) (*BadgerStore, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, errors.New("poster store path is required")
		}
		opts = badger.DefaultOptions(cfg.Path)
		opts.ValueLogFileSize = 16 << 20 // entries are tiny
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for posters: %w", err)
	}
	return NewBadgerStoreFromDB(db, cfg.TTL, cfg.NegativeTTL), nil
}

// NewBadgerStoreFromDB wraps an existing Badger handle.
func NewBadgerStoreFromDB(db *badger.DB, ttl, negativeTTL time.Duration) *BadgerStore {
	return &BadgerStore{db: db, ttl: ttl, negativeTTL: negativeTTL}
}

func posterKey(movieID int) []byte {
	return []byte(badgerPosterKeyPrefix + strconv.Itoa(movieID))
}

// Get returns the stored URL for movieID. found is false when nothing (or
// only an expired entry) is stored; found with url == "" is a negative entry.
func (s *BadgerStore) Get(_ context.Context, movieID int) (url string, found bool, err error) {
	var rec storedPoster

	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(posterKey(movieID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get poster %d: %w", movieID, err)
	}
	return rec.URL, true, nil
}

// Put stores url for movieID with the TTL matching its kind.
func (s *BadgerStore) Put(_ context.Context, movieID int, url string) error {
	data, err := json.Marshal(storedPoster{URL: url, FetchedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal poster: %w", err)
	}

	ttl := s.ttl
	if url == "" {
		ttl = s.negativeTTL
	}

	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(posterKey(movieID), data)
		if ttl > 0 {
			entry = entry.WithTTL(ttl)
		}
		return txn.SetEntry(entry)
	})
}

// Count returns the number of live positive and negative entries.
func (s *BadgerStore) Count(_ context.Context) (positive, negative int, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(badgerPosterKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec storedPoster
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				continue
			}
			if rec.URL == "" {
				negative++
			} else {
				positive++
			}
		}
		return nil
	})
	return positive, negative, err
}

// RunGC reclaims value log space. Having nothing to collect is not an error.
func (s *BadgerStore) RunGC() error {
	err := s.db.RunValueLogGC(0.5)
	if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
		return nil
	}
	return err
}

// Close closes the underlying Badger database.
func (s *BadgerStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
