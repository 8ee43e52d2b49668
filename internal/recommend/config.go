// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"fmt"
	"time"
)

// Config holds serving parameters for the Engine. The ranking itself takes
// no configuration.
type Config struct {
	Limits LimitsConfig `json:"limits"`
	Cache  CacheConfig  `json:"cache"`
}

// LimitsConfig bounds K.
type LimitsConfig struct {
	// DefaultK applies when a request leaves K at 0.
	// Default: 5.
	DefaultK int `json:"default_k"`

	// MaxK caps any requested K.
	// Default: 50.
	MaxK int `json:"max_k"`
}

// CacheConfig controls the response cache.
type CacheConfig struct {
	// Enabled controls whether responses are cached.
	// Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the lifetime of a cached response.
	// Default: 10m.
	TTL time.Duration `json:"ttl"`

	// MaxEntries caps the number of cached (title, k) pairs.
	// Default: 4096.
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultK: DefaultK,
			MaxK:     50,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        10 * time.Minute,
			MaxEntries: 4096,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d", c.Limits.MaxK, c.Limits.DefaultK)
	}
	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
