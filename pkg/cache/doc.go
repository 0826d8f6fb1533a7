// Package cache provides a concurrency-safe in-process cache with
// per-entry time-to-live expiry. Entries are evicted lazily on access
// and by an optional background sweep, so no per-entry timers are
// created regardless of request volume.
package cache
