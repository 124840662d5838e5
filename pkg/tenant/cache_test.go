package tenant_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slicterp/erp/pkg/tenant"
)

func TestCacheKeys(t *testing.T) {
	t.Parallel()

	acme := createTestTenant("acme")
	assert.Equal(t, "id:"+acme.ID.String(), tenant.CacheKeyByID(acme.ID))
	assert.Equal(t, "sub:acme", tenant.CacheKeyBySubdomain("acme"))
	assert.Equal(t, "dom:acme.com", tenant.CacheKeyByDomain("acme.com"))

	// a subdomain and a domain with the same text must not collide
	assert.NotEqual(t, tenant.CacheKeyBySubdomain("acme"), tenant.CacheKeyByDomain("acme"))
}

func TestNoOpCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	var c tenant.NoOpCache
	require.NoError(t, c.Set(ctx, "sub:acme", createTestTenant("acme")))
	_, ok := c.Get(ctx, "sub:acme")
	assert.False(t, ok)
	assert.NoError(t, c.Delete(ctx, "sub:acme"))
}

func TestMemoryCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("set get delete", func(t *testing.T) {
		t.Parallel()

		c := tenant.NewMemoryCache(10, 0)
		acme := createTestTenant("acme")

		require.NoError(t, c.Set(ctx, "sub:acme", acme))
		got, ok := c.Get(ctx, "sub:acme")
		require.True(t, ok)
		assert.Equal(t, acme, got)

		require.NoError(t, c.Delete(ctx, "sub:acme"))
		_, ok = c.Get(ctx, "sub:acme")
		assert.False(t, ok)
	})

	t.Run("entries are copied", func(t *testing.T) {
		t.Parallel()

		c := tenant.NewMemoryCache(10, 0)
		acme := createTestTenant("acme")
		require.NoError(t, c.Set(ctx, "sub:acme", acme))

		acme.Name = "changed after set"
		got, _ := c.Get(ctx, "sub:acme")
		assert.Equal(t, "acme", got.Name)

		got.Name = "changed after get"
		again, _ := c.Get(ctx, "sub:acme")
		assert.Equal(t, "acme", again.Name)
	})

	t.Run("nil tenant is ignored", func(t *testing.T) {
		t.Parallel()

		c := tenant.NewMemoryCache(10, 0)
		require.NoError(t, c.Set(ctx, "sub:acme", nil))
		_, ok := c.Get(ctx, "sub:acme")
		assert.False(t, ok)
	})

	t.Run("capacity", func(t *testing.T) {
		t.Parallel()

		c := tenant.NewMemoryCache(2, 0)
		require.NoError(t, c.Set(ctx, "a", createTestTenant("a")))
		require.NoError(t, c.Set(ctx, "b", createTestTenant("b")))
		require.NoError(t, c.Set(ctx, "c", createTestTenant("c")))

		_, ok := c.Get(ctx, "a")
		assert.False(t, ok)
		_, ok = c.Get(ctx, "c")
		assert.True(t, ok)
	})
}
