package tenant_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slicterp/erp/pkg/tenant"
	"github.com/slicterp/erp/pkg/tenant/memstore"
)

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	acme := createTestTenantWithDomain("acme", "acme-corp.com")
	store := memstore.New(acme)
	resolver := tenant.NewResolver(tenant.NewDirectory(store), nil)
	ctx := context.Background()

	t.Run("production subdomain", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.Resolve(ctx, "acme.slicterp.com")
		require.NoError(t, err)
		assert.Equal(t, acme.ID, got.ID)
	})

	t.Run("localhost subdomain", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.Resolve(ctx, "acme.localhost:3000")
		require.NoError(t, err)
		assert.Equal(t, acme.ID, got.ID)
	})

	t.Run("custom domain", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.Resolve(ctx, "acme-corp.com:443")
		require.NoError(t, err)
		assert.Equal(t, acme.ID, got.ID)
	})

	t.Run("unknown production subdomain", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.Resolve(ctx, "initech.slicterp.com")
		require.ErrorIs(t, err, tenant.ErrTenantNotFound)
		assert.Contains(t, err.Error(), "initech")
	})

	t.Run("unknown localhost subdomain does not fall back to default", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.Resolve(ctx, "initech.localhost:3000")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
	})

	t.Run("unknown custom domain", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.Resolve(ctx, "initech.io")
		require.ErrorIs(t, err, tenant.ErrTenantNotFound)
		assert.Contains(t, err.Error(), "initech.io")
	})

	t.Run("reserved name", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.Resolve(ctx, "www.slicterp.com")
		assert.Nil(t, got)
		require.ErrorIs(t, err, tenant.ErrReservedHostname)
		assert.NotErrorIs(t, err, tenant.ErrTenantNotFound)
	})
}

func TestResolver_DefaultTenant(t *testing.T) {
	t.Parallel()

	store := memstore.New()
	resolver := tenant.NewResolver(tenant.NewDirectory(store), tenant.NewParser())
	ctx := context.Background()

	first, err := resolver.Resolve(ctx, "localhost:3000")
	require.NoError(t, err)
	assert.Equal(t, "demo", first.Subdomain)
	assert.Equal(t, tenant.StatusTrial, first.Status)

	for _, host := range []string{"localhost:3000", "localhost", "", "LOCALHOST:8080"} {
		got, err := resolver.Resolve(ctx, host)
		require.NoError(t, err, "host %q", host)
		assert.Equal(t, first.ID, got.ID, "host %q", host)
	}
	assert.Equal(t, 1, store.Len())
}

func TestResolver_NoDirectoryAccess(t *testing.T) {
	t.Parallel()

	t.Run("reserved names never touch the store", func(t *testing.T) {
		t.Parallel()

		store := new(mockStore)
		resolver := tenant.NewResolver(tenant.NewDirectory(store), nil)

		for _, host := range []string{"www.slicterp.com", "api.slicterp.com", "admin.localhost:3000", "app", "www.x"} {
			_, err := resolver.Resolve(context.Background(), host)
			assert.ErrorIs(t, err, tenant.ErrReservedHostname, "host %q", host)
		}
		store.AssertNotCalled(t, "GetBySubdomain", mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "GetByDomain", mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown subdomain performs no write", func(t *testing.T) {
		t.Parallel()

		store := new(mockStore)
		store.On("GetBySubdomain", mock.Anything, "ghost").Return(nil, tenant.ErrTenantNotFound).Once()
		resolver := tenant.NewResolver(tenant.NewDirectory(store), nil)

		_, err := resolver.Resolve(context.Background(), "ghost.slicterp.com")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
		store.AssertExpectations(t)
		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("existing tenant is read through unchanged", func(t *testing.T) {
		t.Parallel()

		acme := createTestTenant("acme")
		store := new(mockStore)
		store.On("GetBySubdomain", mock.Anything, "acme").Return(acme, nil).Once()
		resolver := tenant.NewResolver(tenant.NewDirectory(store), nil)

		got, err := resolver.Resolve(context.Background(), "acme.slicterp.com")
		require.NoError(t, err)
		assert.Equal(t, acme, got)
		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestResolver_StoreUnavailable(t *testing.T) {
	t.Parallel()

	store := new(mockStore)
	store.On("GetByDomain", mock.Anything, "acme-corp.com").Return(nil, errors.New("connection reset")).Once()
	resolver := tenant.NewResolver(tenant.NewDirectory(store), nil)

	_, err := resolver.Resolve(context.Background(), "acme-corp.com")
	assert.ErrorIs(t, err, tenant.ErrDirectoryUnavailable)
	assert.NotErrorIs(t, err, tenant.ErrTenantNotFound)
}

func TestResolver_RoundTrip(t *testing.T) {
	t.Parallel()

	store := memstore.New()
	dir := tenant.NewDirectory(store)
	resolver := tenant.NewResolver(dir, nil)
	ctx := context.Background()

	created, err := store.Create(ctx, createTestTenant("acme"))
	require.NoError(t, err)

	h := tenant.Classify("acme.slicterp.com")
	require.Equal(t, tenant.HostProductionSubdomain, h.Kind)

	viaHost, err := resolver.ResolveHost(ctx, h)
	require.NoError(t, err)
	viaDirectory, err := dir.FindBySubdomain(ctx, "acme")
	require.NoError(t, err)

	assert.Equal(t, created.ID, viaHost.ID)
	assert.Equal(t, created.ID, viaDirectory.ID)
}

func TestResolver_ResolveRequest(t *testing.T) {
	t.Parallel()

	acme := createTestTenant("acme")
	globex := createTestTenant("globex")
	resolver := tenant.NewResolver(tenant.NewDirectory(memstore.New(acme, globex)), nil)

	t.Run("classifies request host", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "http://acme.slicterp.com/dashboard", nil)
		got, err := resolver.ResolveRequest(req)
		require.NoError(t, err)
		assert.Equal(t, acme.ID, got.ID)
	})

	t.Run("prefers classification from context", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "http://acme.slicterp.com/dashboard", nil)
		h := tenant.Host{Kind: tenant.HostProductionSubdomain, Name: "globex"}
		req = req.WithContext(tenant.WithHost(req.Context(), h))

		got, err := resolver.ResolveRequest(req)
		require.NoError(t, err)
		assert.Equal(t, globex.ID, got.ID)
	})
}

func TestResolver_UnknownKind(t *testing.T) {
	t.Parallel()

	resolver := tenant.NewResolver(tenant.NewDirectory(memstore.New()), nil)
	_, err := resolver.ResolveHost(context.Background(), tenant.Host{Kind: tenant.HostKind(99)})
	assert.ErrorIs(t, err, tenant.ErrMalformedHost)
}
