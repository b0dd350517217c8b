// Package cache provides a small key/value cache used to memoize expensive
// results such as automorphism orbits.
//
// Two implementations ship with the package: [FileCache], which persists
// entries as JSON files under a directory, and [NullCache], which stores
// nothing and is used when caching is disabled.
//
// Keys are produced by a [Keyer] so that the same graph always maps to the
// same entry regardless of which command computed it.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	// OrbitsTTL bounds how long computed orbits are kept. Orbits depend only
	// on graph structure, so the value is long.
	OrbitsTTL = 30 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with optional expiry.
//
// Get reports a miss with (nil, false, nil); errors are reserved for I/O
// failures. A ttl of zero means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
