// Package cache provides the TTL cache abstraction shared by the
// institute lookup and session validation layers.
//
// The Store interface is deliberately tiny: get, set with a per-entry
// TTL, and explicit invalidation. Expired entries are treated as absent,
// never stale-served. Two implementations ship with the package:
//
//   - NewMemory: a per-process map guarded by a mutex. Fast, but each
//     process instance expires independently; a status or role change is
//     only guaranteed visible everywhere once every instance's TTL has
//     elapsed.
//   - NewRedis: values marshaled to JSON in a shared Redis keyspace, so
//     explicit invalidation is seen by every instance immediately.
//
// The memory store accepts an injectable clock so tests can control
// expiry deterministically.
package cache
