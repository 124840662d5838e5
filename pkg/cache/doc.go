// Package cache provides a generic, thread-safe LRU cache with optional
// per-entry expiry.
//
// The cache holds at most a fixed number of entries. When a new entry
// would exceed that capacity the least recently used one is evicted.
// Entries stored with a positive TTL are dropped lazily the first time
// they are read after expiring, so there is no background goroutine to
// stop.
//
// # Usage
//
//	c := cache.NewLRU[string, *tenant.Tenant](1000)
//
//	c.Set("sub:acme", t, 5*time.Minute)
//
//	if t, ok := c.Get("sub:acme"); ok {
//		// use t
//	}
//
//	c.Delete("sub:acme")
//
// All operations are O(1) and safe for concurrent use.
package cache
