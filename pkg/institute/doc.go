// Package institute resolves tenant subdomains to institutes.
//
// Lookup keeps a short-lived cache in front of the institute store,
// including negative entries for unknown or suspended subdomains so a
// burst of requests to a dead subdomain does not hammer the store. Only
// active institutes resolve successfully.
//
// The cache trades consistency for latency: after a status change a
// stale entry may keep answering until its TTL elapses or the caller
// invokes Invalidate. Mutation paths (suspension, reactivation) are
// responsible for calling Invalidate themselves.
package institute
