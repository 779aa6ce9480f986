// Package cache provides pluggable storage for computed benchmark results.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the server and CI runners
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// Wrap any backend with [NewInstrumented] to report hits, misses and
// writes to the observability cache hooks.
//
// # Keys
//
// Keys are built by a [Keyer] so that every component hashes its inputs the
// same way. Only deterministic work is cached: a benchmark row is keyed by
// its size, iteration count and seed, and rows from time-seeded runs are
// never written.
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry type.
const (
	// TTLRow is how long a benchmark row stays valid. Rows are a pure
	// function of their key, so this only bounds disk usage.
	TTLRow = 30 * 24 * time.Hour

	// TTLBench is how long a full benchmark response served over HTTP stays
	// valid.
	TTLBench = 24 * time.Hour
)

// Cache stores opaque byte values by key.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is reported
	// as hit == false with a nil error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the backend.
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Clear empties c if the backend supports it and reports whether it did.
// An [Instrumented] cache is judged by the backend it wraps.
func Clear(ctx context.Context, c Cache) (bool, error) {
	if in, ok := c.(*Instrumented); ok {
		return Clear(ctx, in.Cache)
	}
	cl, ok := c.(Clearer)
	if !ok {
		return false, nil
	}
	return true, cl.Clear(ctx)
}
