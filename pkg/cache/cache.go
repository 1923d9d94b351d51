// Package cache stores computed layouts and rendered previews.
//
// A [Cache] is a byte store with per-entry expiry. Three backends exist:
// [FileCache] for the CLI, [RedisCache] for the HTTP service when several
// instances share results, and [NullCache] to switch caching off. Keys come
// from a [Keyer], so callers never build key strings by hand.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a key-value store for serialized results.
type Cache interface {
	// Get returns the stored bytes and whether the key was present and
	// unexpired. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero keeps the entry forever.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}
