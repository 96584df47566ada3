// Package session exchanges bearer credentials for verified caller
// identity.
//
// Validate runs the credential through the identity provider, loads the
// caller's profile and role assignments from the store, and produces a
// Session: user id, email, institute membership, and a closed set of
// role names with typed predicates. Sessions are cached by the raw
// credential for a short TTL; invalid credentials are never cached, so
// a bad token carries no penalty window.
//
// Any code path that mutates a user's roles or credentials must call
// Invalidate, otherwise the stale cached session keeps its old
// privileges until the TTL runs out.
package session
