// Package cache stores densified graphs and rendered artifacts keyed by
// content hash.
//
// # Backends
//
//   - [FileCache]: sharded JSON files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP API
//   - [NullCache]: stores nothing; used with --no-cache
//
// # Keys
//
// A [Keyer] derives keys from the SHA-256 of the input graph and the
// options that affect the result, so changing the step or policy never
// returns a stale entry:
//
//	k := cache.NewDefaultKeyer()
//	key := k.DenseKey(cache.Hash(graphJSON), cache.DenseKeyOpts{Step: 3, Policy: "floor"})
//
// [ScopedKeyer] prefixes every key, which lets several deployments share one
// Redis instance.
package cache

import (
	"context"
	"time"
)

// TTLs for cached entries. Results are pure functions of their key, so the
// TTLs only bound disk and memory growth.
const (
	TTLDense    = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the stored value and true, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
