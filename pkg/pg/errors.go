package pg

import "errors"

var (
	ErrParseConfig = errors.New("pg: failed to parse connection config")
	ErrConnect     = errors.New("pg: failed to open connection")
	ErrMigrate     = errors.New("pg: failed to apply migrations")
	ErrHealthcheck = errors.New("pg: healthcheck failed")
)
