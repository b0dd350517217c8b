package cache

import (
	"context"
	"time"
)

// NullCache stores nothing. It backs --no-cache runs and tests where
// memoization must not leak between cases.
type NullCache struct{}

// NewNullCache returns a [NullCache].
func NewNullCache() *NullCache { return &NullCache{} }

// Get always misses.
func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards the value.
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete is a no-op.
func (*NullCache) Delete(context.Context, string) error { return nil }

// Close is a no-op.
func (*NullCache) Close() error { return nil }

var (
	_ Cache = (*NullCache)(nil)
	_ Cache = (*FileCache)(nil)
)
