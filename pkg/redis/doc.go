// Package redis connects to the shared Redis used for cross-instance
// cache stores, with startup retries and a readiness probe.
package redis
