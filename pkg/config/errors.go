package config

import "errors"

var (
	// ErrNilPointer is returned when Load is called with nil.
	ErrNilPointer = errors.New("config: nil pointer")

	// ErrParseFailed wraps env parsing failures.
	ErrParseFailed = errors.New("config: failed to parse environment")
)
