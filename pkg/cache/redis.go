package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store backed by a shared Redis keyspace. Because all
// process instances read the same keys, an explicit invalidation is
// visible everywhere immediately, which a per-process Memory store
// cannot offer.
//
// Values are marshaled to JSON. Redis handles expiry natively, so there
// is no lazy expiry path here.
type Redis[V any] struct {
	client redis.UniversalClient
	prefix string
}

// NewRedis creates a Redis-backed store. All keys are namespaced with
// prefix to keep unrelated stores from colliding in one database.
func NewRedis[V any](client redis.UniversalClient, prefix string) *Redis[V] {
	return &Redis[V]{client: client, prefix: prefix}
}

func (r *Redis[V]) key(k string) string {
	return r.prefix + ":" + k
}

func (r *Redis[V]) Get(ctx context.Context, key string) (V, bool) {
	var zero V

	raw, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		return zero, false
	}

	var value V
	if err := json.Unmarshal(raw, &value); err != nil {
		// A payload written by an incompatible version; drop it so the
		// caller repopulates with the current shape.
		r.client.Del(ctx, r.key(key))
		return zero, false
	}

	return value, true
}

func (r *Redis[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	r.client.Set(ctx, r.key(key), raw, ttl)
}

func (r *Redis[V]) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = r.key(k)
	}
	r.client.Del(ctx, prefixed...)
}

func (r *Redis[V]) InvalidateAll(ctx context.Context) {
	iter := r.client.Scan(ctx, 0, r.prefix+":*", 0).Iterator()
	for iter.Next(ctx) {
		r.client.Del(ctx, iter.Val())
	}
}
