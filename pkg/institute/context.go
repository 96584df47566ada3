package institute

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type contextKey struct{}

// ContextValue is the institute identity carried on a request context.
type ContextValue struct {
	ID        uuid.UUID
	Subdomain string
}

// WithContext attaches an institute identity to the context.
func WithContext(ctx context.Context, v ContextValue) context.Context {
	return context.WithValue(ctx, contextKey{}, v)
}

// FromContext retrieves the institute identity from the context.
func FromContext(ctx context.Context) (ContextValue, bool) {
	v, ok := ctx.Value(contextKey{}).(ContextValue)
	return v, ok
}

// MustFromContext retrieves the institute identity or panics. Only for
// handlers mounted behind the institute gate.
func MustFromContext(ctx context.Context) ContextValue {
	v, ok := FromContext(ctx)
	if !ok {
		panic("institute: no institute in context")
	}
	return v
}

// LoggerExtractor exposes the institute id to the logger's context
// attribute pipeline.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v, ok := FromContext(ctx); ok {
			return slog.String("institute_id", v.ID.String()), true
		}
		return slog.Attr{}, false
	}
}
