package institute

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campuskit/campuskit/pkg/cache"
)

// DefaultTTL bounds how long a resolved subdomain is served from cache.
const DefaultTTL = 5 * time.Minute

// Record is what the lookup cache remembers about a subdomain. Negative
// results (unknown subdomains) are cached too, with Found unset, so
// repeated misses stop at the cache.
type Record struct {
	ID     uuid.UUID `json:"id"`
	Status Status    `json:"status"`
	Found  bool      `json:"found"`
}

// Lookup resolves subdomains to active institutes through a TTL cache.
type Lookup struct {
	provider    Provider
	store       cache.Store[Record]
	ttl         time.Duration
	negativeTTL time.Duration
}

// LookupOption configures a Lookup.
type LookupOption func(*Lookup)

// WithStore replaces the default in-memory cache, e.g. with a
// Redis-backed store shared across instances.
func WithStore(store cache.Store[Record]) LookupOption {
	return func(l *Lookup) {
		if store != nil {
			l.store = store
		}
	}
}

// WithTTL sets the cache lifetime for resolved subdomains.
func WithTTL(ttl time.Duration) LookupOption {
	return func(l *Lookup) {
		if ttl > 0 {
			l.ttl = ttl
		}
	}
}

// WithNegativeTTL sets the cache lifetime for unknown or suspended
// subdomains. Defaults to the positive TTL.
func WithNegativeTTL(ttl time.Duration) LookupOption {
	return func(l *Lookup) {
		if ttl > 0 {
			l.negativeTTL = ttl
		}
	}
}

// NewLookup creates a subdomain resolver backed by provider.
func NewLookup(provider Provider, opts ...LookupOption) *Lookup {
	l := &Lookup{
		provider: provider,
		ttl:      DefaultTTL,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.store == nil {
		l.store = cache.NewMemory[Record]()
	}
	if l.negativeTTL == 0 {
		l.negativeTTL = l.ttl
	}
	return l
}

// Resolve maps a subdomain to the owning active institute's id.
//
// Suspended and unknown subdomains both yield ErrNotFound; callers are
// not told which, so a suspended institute is indistinguishable from a
// missing one. Store failures surface as ErrNotFound as well and are
// not cached. Concurrent misses for the same subdomain may each query
// the store; the last write wins, which is harmless since every write
// carries the same freshly-read row.
func (l *Lookup) Resolve(ctx context.Context, sub string) (uuid.UUID, error) {
	key := strings.ToLower(sub)

	if rec, ok := l.store.Get(ctx, key); ok {
		if rec.Found && rec.Status == StatusActive {
			return rec.ID, nil
		}
		return uuid.Nil, ErrNotFound
	}

	inst, err := l.provider.FindBySubdomain(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			l.store.Set(ctx, key, Record{}, l.negativeTTL)
		}
		return uuid.Nil, ErrNotFound
	}

	rec := Record{ID: inst.ID, Status: inst.Status, Found: true}
	if !inst.Active() {
		l.store.Set(ctx, key, rec, l.negativeTTL)
		return uuid.Nil, ErrNotFound
	}

	l.store.Set(ctx, key, rec, l.ttl)
	return inst.ID, nil
}

// Invalidate drops the cached entry for a subdomain. Status mutations
// must call this, or stale answers persist until the TTL elapses.
func (l *Lookup) Invalidate(ctx context.Context, sub string) {
	l.store.Invalidate(ctx, strings.ToLower(sub))
}

// InvalidateAll drops every cached entry.
func (l *Lookup) InvalidateAll(ctx context.Context) {
	l.store.InvalidateAll(ctx)
}
