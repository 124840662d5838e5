package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/slicterp/erp/pkg/cache"
)

// Cache stores resolved tenants by lookup key. Only successful lookups are
// cached; a miss always goes to the store.
type Cache interface {
	// Get retrieves a tenant from cache by key.
	Get(ctx context.Context, key string) (*Tenant, bool)

	// Set stores a tenant in cache.
	Set(ctx context.Context, key string, tenant *Tenant) error

	// Delete removes a tenant from cache.
	Delete(ctx context.Context, key string) error
}

// Cache key builders. Lookups by different fields never share a key.
func CacheKeyByID(id uuid.UUID) string            { return "id:" + id.String() }
func CacheKeyBySubdomain(subdomain string) string { return "sub:" + subdomain }
func CacheKeyByDomain(domain string) string       { return "dom:" + domain }

// NoOpCache disables caching, useful for testing or when caching is unwanted.
type NoOpCache struct{}

func (NoOpCache) Get(ctx context.Context, key string) (*Tenant, bool) {
	return nil, false
}

func (NoOpCache) Set(ctx context.Context, key string, tenant *Tenant) error {
	return nil
}

func (NoOpCache) Delete(ctx context.Context, key string) error {
	return nil
}

const (
	// DefaultCacheSize is the default maximum number of cached tenants.
	DefaultCacheSize = 1000
	// DefaultCacheTTL is the default lifetime of a cached tenant.
	DefaultCacheTTL = 5 * time.Minute
)

// MemoryCache is a process-local LRU cache with a fixed entry lifetime.
type MemoryCache struct {
	lru *cache.LRU[string, *Tenant]
	ttl time.Duration
}

// NewMemoryCache creates an in-process cache. Non-positive arguments fall
// back to DefaultCacheSize and DefaultCacheTTL.
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &MemoryCache{
		lru: cache.NewLRU[string, *Tenant](size),
		ttl: ttl,
	}
}

// Get returns a copy of the cached tenant so callers never share state.
func (c *MemoryCache) Get(ctx context.Context, key string) (*Tenant, bool) {
	t, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	cp := *t
	return &cp, true
}

func (c *MemoryCache) Set(ctx context.Context, key string, tenant *Tenant) error {
	if tenant == nil {
		return nil
	}
	cp := *tenant
	c.lru.Set(key, &cp, c.ttl)
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.lru.Delete(key)
	return nil
}
