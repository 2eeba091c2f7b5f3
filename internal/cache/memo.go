package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/terra-clan/extension-portal/internal/metrics"
)

// Memo memoizes deterministic computations in a Cache. Keys are scoped by a
// version string so results computed over an older dataset are never served.
// Concurrent misses for the same key run the computation once.
type Memo struct {
	cache   Cache
	version string
	group   singleflight.Group
}

// NewMemo creates a memo over c for data identified by version
func NewMemo(c Cache, version string) *Memo {
	return &Memo{cache: c, version: version}
}

// Version returns the data version keys are scoped by
func (m *Memo) Version() string {
	return m.version
}

func (m *Memo) key(k string) string {
	return m.version + ":" + k
}

// lookup decodes a cached value into out. Cache failures count as misses.
func (m *Memo) lookup(ctx context.Context, key string, out any) bool {
	data, err := m.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			metrics.CacheLookups.WithLabelValues("error").Inc()
			slog.Warn("cache lookup failed", "key", key, "error", err)
			return false
		}
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		slog.Warn("discarding undecodable cache entry", "key", key, "error", err)
		return false
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return true
}

func (m *Memo) store(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Warn("failed to encode cache entry", "key", key, "error", err)
		return
	}
	if err := m.cache.Set(ctx, key, data); err != nil {
		slog.Warn("failed to store cache entry", "key", key, "error", err)
	}
}

// Do returns the memoized result of fn under key, computing and storing it
// on a miss. A nil memo always calls fn.
func Do[T any](ctx context.Context, m *Memo, key string, fn func() (T, error)) (T, error) {
	if m == nil {
		return fn()
	}

	full := m.key(key)

	var cached T
	if m.lookup(ctx, full, &cached) {
		return cached, nil
	}

	v, err, _ := m.group.Do(full, func() (any, error) {
		// A flight that finished between our lookup and Do has already stored it
		var again T
		if m.lookup(ctx, full, &again) {
			return again, nil
		}

		result, err := fn()
		if err != nil {
			return result, err
		}
		m.store(ctx, full, result)
		return result, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// VersionOf derives a short content hash of v, suitable as a Memo version
func VersionOf(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode for versioning: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:6]), nil
}
