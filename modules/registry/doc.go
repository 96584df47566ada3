// Package registry owns the platform's tenant and account records: the
// institutes table the subdomain lookup resolves against, and the
// profile/role tables the session validator reads.
//
// Reads issued here run with elevated database privileges on purpose:
// they establish who the caller is, so row-level security cannot apply
// to them yet.
//
// The registry is also where the mutation paths live that the core
// caches depend on. Suspending or reactivating an institute invalidates
// its lookup cache entry; granting or revoking a role flushes the
// session cache. Skipping those invalidations would leave stale
// privileges live until the TTLs run out.
package registry
