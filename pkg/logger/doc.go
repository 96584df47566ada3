// Package logger builds slog loggers with context-aware attributes.
//
// A logger created here can be given context extractors, functions
// that pull request-scoped values (request id, institute id, user id)
// out of a context. Every log record written with a Context methods
// variant picks them up automatically.
package logger
