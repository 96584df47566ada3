// Package pg bootstraps the PostgreSQL layer: a pgx connection pool
// with startup retries, goose schema migrations from an embedded
// filesystem, and a health probe for readiness checks.
package pg
