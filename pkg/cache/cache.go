// Package cache stores aggregated summaries and rendered chart artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, used by the CLI.
//   - [RedisCache]: a shared cache for the HTTP server.
//   - [NullCache]: never stores anything; used with --no-cache.
//
// # Keys
//
// A [Keyer] derives cache keys from content hashes so identical inputs share
// entries across processes:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ArtifactKey(cache.Hash(datasetJSON), cache.ArtifactKeyOpts{Format: "svg"})
//
// [ScopedKeyer] prefixes every key, which keeps several servers apart when
// they share one Redis database.
package cache

import (
	"context"
	"time"
)

// Cache TTLs by entry kind.
const (
	TTLSummary  = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
