package session

import "errors"

var (
	// ErrInvalidCredential covers every way a credential can fail to
	// produce a session: bad signature, expiry, a deleted profile, or
	// a store failure. Callers are deliberately not told which.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrNotInContext is returned when a handler expects a session in
	// the request context and none is present.
	ErrNotInContext = errors.New("no session in context")
)
