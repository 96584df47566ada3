package institute

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status is an institute's lifecycle state.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// Institute is one tenant of the platform, addressed by its subdomain.
type Institute struct {
	ID        uuid.UUID `json:"id"`
	Subdomain string    `json:"subdomain"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Active reports whether the institute may serve requests.
func (i *Institute) Active() bool {
	return i != nil && i.Status == StatusActive
}

// Provider loads institutes from the backing store.
type Provider interface {
	// FindBySubdomain returns the non-deleted institute owning the
	// given lowercased subdomain, or ErrNotFound.
	FindBySubdomain(ctx context.Context, subdomain string) (*Institute, error)
}
