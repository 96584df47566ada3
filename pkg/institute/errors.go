package institute

import "errors"

var (
	// ErrNotFound is returned when no institute owns a subdomain.
	ErrNotFound = errors.New("institute not found")

	// ErrNotInContext is returned when a handler expects an institute
	// in the request context and none is present.
	ErrNotInContext = errors.New("no institute in context")
)
