// Package cache provides a byte cache for rendered diagrams.
//
// Rendering is deterministic, so cached and freshly rendered output
// are identical; the cache only saves the encode work on repeated
// runs. Two implementations exist:
//   - FileCache: file-backed, under the XDG cache directory
//   - NullCache: no-op, for --no-cache and tests
package cache

import (
	"context"
	"time"
)

// Cache stores rendered artifacts keyed by content hash.
type Cache interface {
	// Get retrieves a value. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
