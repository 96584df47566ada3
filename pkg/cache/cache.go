package cache

import (
	"context"
	"time"
)

// Clock returns the current time. The memory store takes one so tests
// can drive expiry without sleeping.
type Clock func() time.Time

// Store is a TTL cache of values of type V.
//
// All operations are single-key reads or replaces; implementations must
// be safe for concurrent use, but no compound invariant spans keys, so
// duplicate writes under a stampede are acceptable.
type Store[V any] interface {
	// Get returns the cached value for key. An entry past its TTL is
	// reported as absent.
	Get(ctx context.Context, key string) (V, bool)

	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value V, ttl time.Duration)

	// Invalidate removes the given keys.
	Invalidate(ctx context.Context, keys ...string)

	// InvalidateAll removes every entry.
	InvalidateAll(ctx context.Context)
}
