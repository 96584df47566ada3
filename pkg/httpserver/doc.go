// Package httpserver wraps net/http's server with graceful shutdown on
// SIGINT/SIGTERM or context cancellation, plus a combined
// liveness/readiness handler.
package httpserver
