// Package guard composes subdomain resolution, credential extraction,
// and session validation into the per-request access-control gate.
//
// RequireInstituteContext is the tenant gate: it establishes who is
// calling and which institute the request addresses, enforces that the
// caller belongs to that institute (platform superusers belong to all
// of them), and stores the resulting context for route handlers.
// Handlers never re-derive identity or tenant themselves.
//
// Session validation and institute resolution are independent, so the
// gate runs them concurrently and joins before the membership check.
// Both always run to completion: a caller probing a subdomain learns
// nothing about its existence from an authentication failure, and vice
// versa.
//
// Every failure surfaces as 401 with a short machine-readable reason.
// Infrastructure errors in the stores are indistinguishable from
// absence here; mapping rejections to a login redirect or an error page
// is the outer layer's job.
package guard
