package session

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// WithContext attaches a session to the context.
func WithContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext retrieves the session from the context.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}

// MustFromContext retrieves the session or panics. Only for handlers
// mounted behind an authentication gate.
func MustFromContext(ctx context.Context) *Session {
	s, ok := FromContext(ctx)
	if !ok {
		panic("session: no session in context")
	}
	return s
}

// LoggerExtractor exposes the caller's user id to the logger's context
// attribute pipeline.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if s, ok := FromContext(ctx); ok {
			return slog.String("user_id", s.UserID.String()), true
		}
		return slog.Attr{}, false
	}
}
