package guard

import (
	"context"

	"github.com/google/uuid"

	"github.com/campuskit/campuskit/pkg/session"
)

type contextKey struct{}

// Context is the access-control bundle handlers consume. It is only
// ever constructed after session validation, institute resolution, and
// the membership check have all succeeded.
type Context struct {
	Session            *session.Session
	InstituteID        uuid.UUID
	InstituteSubdomain string
}

// WithContext attaches the access-control bundle to the context.
func WithContext(ctx context.Context, v Context) context.Context {
	return context.WithValue(ctx, contextKey{}, v)
}

// FromContext retrieves the access-control bundle from the context.
func FromContext(ctx context.Context) (Context, bool) {
	v, ok := ctx.Value(contextKey{}).(Context)
	return v, ok
}

// MustFromContext retrieves the access-control bundle or panics. Only
// for handlers mounted behind RequireInstituteContext.
func MustFromContext(ctx context.Context) Context {
	v, ok := FromContext(ctx)
	if !ok {
		panic("guard: no access context in request")
	}
	return v
}
