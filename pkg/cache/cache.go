// Package cache stores rendered artifacts between runs.
//
// Backends: [FileCache] for the CLI, [RedisCache] for shared server
// deployments and [NullCache] when caching is off. Keys come from a [Keyer].
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads under string keys.
//
// A miss is reported as (nil, false, nil); errors are reserved for backend
// failures. Callers treat every error as a miss, so a broken cache slows a
// run down but never fails it.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// TTLs for cached entries.
const (
	// TTLArtifact applies to rasterised outputs (PNG, PDF). They are a pure
	// function of the SVG and conversion options, so they can live long.
	TTLArtifact = 7 * 24 * time.Hour
)
