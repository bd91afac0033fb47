// Package cache provides a generic, thread-safe LRU cache with per-entry
// expiry.
//
//	profiles := cache.New[string, userdata.Record](1024, time.Minute)
//	profiles.Put(subject, rec)
//	rec, ok := profiles.Get(subject)
//
// Expired entries are dropped lazily on Get or when evicted for capacity.
package cache
