// Package rbac maps the platform's closed role set to permissions.
//
// Roles and their permissions are declared in YAML (or provided
// in-memory), optionally inheriting from one another. The authorizer
// flattens inheritance once at construction time; runtime checks are
// lookups against precomputed, immutable permission sets and are safe
// for concurrent use.
package rbac
