// Package async runs independent operations concurrently and joins on
// their results.
//
// The access gate uses it to resolve the caller's session and the
// request's institute at the same time: both futures are started before
// either is awaited, so the two lookups always run to completion and
// their relative timing reveals nothing about which one failed.
package async
