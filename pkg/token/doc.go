// Package token pulls a bearer credential out of an incoming request.
//
// The auth client has stored its session in several shapes over time:
// an Authorization header, a project-scoped cookie holding JSON (plain
// or wrapped with a "base64-" marker), and a couple of legacy cookie
// names from earlier client versions. All of them must keep working so
// that a cookie format migration never forces users to sign in again.
//
// Extraction is an ordered list of parser strategies; the first one
// that yields a credential wins. The Authorization header always beats
// cookies.
package token
