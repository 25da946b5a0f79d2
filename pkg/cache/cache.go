// Package cache provides snapshot caching for decklog's data-fetching layer.
//
// Backends:
//   - FileCache: directory-backed, for CLI usage
//   - RedisCache: for multi-instance serve deployments
//   - NullCache: no-op, for tests or --no-cache
//
// Only fetched graph snapshots are cached; computed layouts are never stored
// (layouts are cheap to recompute and have no persistence of their own).
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends.
// Implementations must treat expired entries as misses.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live. A ttl of 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// SnapshotKey generates the cache key for a graph snapshot fetched from the
// given source (file path or URL).
func SnapshotKey(source string) string {
	return hashKey("snapshot", source)
}
