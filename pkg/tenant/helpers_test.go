package tenant_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/slicterp/erp/pkg/tenant"
)

// mockStore is a testify mock of tenant.Store.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Tenant), args.Error(1)
}

func (m *mockStore) GetBySubdomain(ctx context.Context, subdomain string) (*tenant.Tenant, error) {
	args := m.Called(ctx, subdomain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Tenant), args.Error(1)
}

func (m *mockStore) GetByDomain(ctx context.Context, domain string) (*tenant.Tenant, error) {
	args := m.Called(ctx, domain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Tenant), args.Error(1)
}

func (m *mockStore) Create(ctx context.Context, t *tenant.Tenant) (*tenant.Tenant, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Tenant), args.Error(1)
}

func createTestTenant(subdomain string) *tenant.Tenant {
	now := time.Now().UTC()
	return &tenant.Tenant{
		ID:          uuid.New(),
		Subdomain:   subdomain,
		Name:        subdomain,
		CompanyName: subdomain + " Corp",
		Status:      tenant.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func createTestTenantWithDomain(subdomain, domain string) *tenant.Tenant {
	t := createTestTenant(subdomain)
	t.Domain = domain
	return t
}
