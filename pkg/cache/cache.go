// Package cache stores rendered artifacts so repeated renders of the same
// scene are instant.
//
// # Backends
//
//   - [FileCache]: JSON entries under the user cache directory (CLI default)
//   - [RedisCache]: a shared Redis instance (github.com/redis/go-redis/v9)
//   - [MongoCache]: a MongoDB collection with a TTL index
//     (go.mongodb.org/mongo-driver)
//   - [NullCache]: caching disabled
//
// [Open] selects a backend from a [Config].
//
// # Keys
//
// Keys are produced by a [Keyer]. The default keyer hashes the options that
// affect the output, so any change to the vertices, the matrix, the palette
// or the render settings yields a new key:
//
//	k := cache.NewDefaultKeyer()
//	key := k.ArtifactKey(sceneHash, cache.ArtifactKeyOpts{Format: "png", Width: 960, Height: 540})
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the data stored under key. A missing or expired entry is
	// reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Cache TTLs.
const (
	// TTLArtifact applies to rendered outputs (PNG, GIF, SVG, ...).
	TTLArtifact = 7 * 24 * time.Hour

	// TTLScene applies to storyboard JSON, which is cheap to rebuild but
	// requested often by the preview server.
	TTLScene = 24 * time.Hour
)
