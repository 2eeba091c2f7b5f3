// Package cache memoizes query results. Entries live in Redis when it is
// configured and in a process-local LRU otherwise.
package cache

import (
	"context"
	"errors"
)

// ErrMiss is returned by Get when the key is not cached
var ErrMiss = errors.New("cache miss")

// Cache stores encoded query results
type Cache interface {
	// Get returns the value stored under key, or ErrMiss
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key using the cache's configured TTL
	Set(ctx context.Context, key string, value []byte) error

	// Close releases the backing connection
	Close() error
}
