package memstore_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slicterp/erp/pkg/tenant"
	"github.com/slicterp/erp/pkg/tenant/memstore"
)

func TestStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("create and read back", func(t *testing.T) {
		t.Parallel()

		s := memstore.New()
		created, err := s.Create(ctx, &tenant.Tenant{Subdomain: "acme", Domain: "acme.com", Status: tenant.StatusActive})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)

		byID, err := s.GetByID(ctx, created.ID)
		require.NoError(t, err)
		bySub, err := s.GetBySubdomain(ctx, "acme")
		require.NoError(t, err)
		byDom, err := s.GetByDomain(ctx, "acme.com")
		require.NoError(t, err)

		assert.Equal(t, created, byID)
		assert.Equal(t, created, bySub)
		assert.Equal(t, created, byDom)
	})

	t.Run("misses", func(t *testing.T) {
		t.Parallel()

		s := memstore.New()
		_, err := s.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
		_, err = s.GetBySubdomain(ctx, "acme")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
		_, err = s.GetByDomain(ctx, "acme.com")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
		_, err = s.GetByDomain(ctx, "")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
	})

	t.Run("unique subdomain", func(t *testing.T) {
		t.Parallel()

		s := memstore.New(&tenant.Tenant{Subdomain: "acme"})
		_, err := s.Create(ctx, &tenant.Tenant{Subdomain: "acme"})
		assert.ErrorIs(t, err, tenant.ErrDuplicateTenant)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("unique domain", func(t *testing.T) {
		t.Parallel()

		s := memstore.New(&tenant.Tenant{Subdomain: "acme", Domain: "acme.com"})
		_, err := s.Create(ctx, &tenant.Tenant{Subdomain: "globex", Domain: "acme.com"})
		assert.ErrorIs(t, err, tenant.ErrDuplicateTenant)

		_, err = s.GetBySubdomain(ctx, "globex")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
	})

	t.Run("empty domains do not collide", func(t *testing.T) {
		t.Parallel()

		s := memstore.New(&tenant.Tenant{Subdomain: "acme"})
		_, err := s.Create(ctx, &tenant.Tenant{Subdomain: "globex"})
		require.NoError(t, err)
		assert.Equal(t, 2, s.Len())
	})

	t.Run("mixed case keys are rejected", func(t *testing.T) {
		t.Parallel()

		s := memstore.New()
		_, err := s.Create(ctx, &tenant.Tenant{Subdomain: "Acme"})
		assert.ErrorIs(t, err, tenant.ErrInvalidTenant)
		_, err = s.Create(ctx, &tenant.Tenant{Subdomain: "acme", Domain: "Acme-Corp.com"})
		assert.ErrorIs(t, err, tenant.ErrInvalidTenant)
		assert.Zero(t, s.Len())
	})

	t.Run("unique id", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		s := memstore.New(&tenant.Tenant{ID: id, Subdomain: "acme"})
		_, err := s.Create(ctx, &tenant.Tenant{ID: id, Subdomain: "globex"})
		assert.ErrorIs(t, err, tenant.ErrDuplicateTenant)
	})

	t.Run("returned values are copies", func(t *testing.T) {
		t.Parallel()

		s := memstore.New(&tenant.Tenant{Subdomain: "acme", Name: "Acme"})
		got, err := s.GetBySubdomain(ctx, "acme")
		require.NoError(t, err)
		got.Name = "changed"

		again, err := s.GetBySubdomain(ctx, "acme")
		require.NoError(t, err)
		assert.Equal(t, "Acme", again.Name)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		cctx, cancel := context.WithCancel(ctx)
		cancel()

		s := memstore.New()
		_, err := s.Create(cctx, &tenant.Tenant{Subdomain: "acme"})
		assert.ErrorIs(t, err, context.Canceled)
		_, err = s.GetBySubdomain(cctx, "acme")
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, s.Len())
	})

	t.Run("invalid seed panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			memstore.New(&tenant.Tenant{Subdomain: "acme"}, &tenant.Tenant{Subdomain: "acme"})
		})
	})
}

func TestStore_ConcurrentCreate(t *testing.T) {
	t.Parallel()

	s := memstore.New()
	const workers = 32

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		dupes   int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Create(context.Background(), &tenant.Tenant{Subdomain: "demo"})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				created++
			} else if assert.ErrorIs(t, err, tenant.ErrDuplicateTenant) {
				dupes++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, dupes)
	assert.Equal(t, 1, s.Len())
}
