// Package cache stores formatted output keyed by input and rules.
//
// Three backends implement Cache:
//
//   - FileCache: JSON entries on disk, used by the CLI
//   - RedisCache: a shared Redis instance, used by the HTTP server
//   - NullCache: stores nothing, used when caching is disabled
//
// Keys are built by a Keyer so that CLI and server agree on them:
//
//	key := keyer.OutputKey(cache.Hash([]byte(text)), cache.OutputKeyOpts{Mode: "format", Config: cfg})
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored data and true, or nil and false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// TTLOutput is how long formatted output stays cached. Output is a pure
// function of text and rules, so the limit only bounds disk and memory use.
const TTLOutput = 7 * 24 * time.Hour
