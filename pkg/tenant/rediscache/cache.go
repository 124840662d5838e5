// Package rediscache implements tenant.Cache on Redis so that every instance
// of the service shares the same resolved tenants.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/slicterp/erp/pkg/logger"
	"github.com/slicterp/erp/pkg/tenant"
)

const (
	// DefaultPrefix namespaces tenant keys.
	DefaultPrefix = "tenant:"
	// DefaultTTL is the lifetime of a cached tenant.
	DefaultTTL = 5 * time.Minute
)

// Cache stores tenants as JSON values with a fixed TTL.
type Cache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

var _ tenant.Cache = (*Cache)(nil)

// Option configures the cache.
type Option func(*Cache)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(c *Cache) { c.prefix = prefix }
}

// WithTTL sets the entry lifetime. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithLogger sets the logger used to report read failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Redis-backed tenant cache.
func New(client redis.UniversalClient, opts ...Option) *Cache {
	c := &Cache{
		client: client,
		prefix: DefaultPrefix,
		ttl:    DefaultTTL,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached tenant. Read or decode failures are treated as a
// miss so that resolution falls through to the store.
func (c *Cache) Get(ctx context.Context, key string) (*tenant.Tenant, bool) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "tenant cache read failed", logger.Error(err))
		}
		return nil, false
	}

	var t tenant.Tenant
	if err := json.Unmarshal(data, &t); err != nil {
		c.logger.WarnContext(ctx, "tenant cache entry corrupt", logger.Error(err))
		_ = c.client.Del(ctx, c.prefix+key).Err()
		return nil, false
	}
	return &t, true
}

func (c *Cache) Set(ctx context.Context, key string, t *tenant.Tenant) error {
	if t == nil {
		return nil
	}
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.prefix+key, data, c.ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}
