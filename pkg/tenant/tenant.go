package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a tenant. Values unknown to this package
// are stored and returned verbatim.
type Status string

const (
	StatusTrial     Status = "TRIAL"
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
	StatusCancelled Status = "CANCELLED"
)

// Tenant is the unit of data isolation. Subdomain is unique across all
// tenants; Domain, when set, is unique as well.
type Tenant struct {
	ID          uuid.UUID `json:"id"`
	Subdomain   string    `json:"subdomain"`
	Domain      string    `json:"domain,omitempty"`
	Name        string    `json:"name"`
	CompanyName string    `json:"company_name"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasDomain reports whether the tenant owns a custom domain.
func (t *Tenant) HasDomain() bool {
	return t != nil && t.Domain != ""
}

// Store is the persistence boundary of the tenant directory.
//
// Lookups return ErrTenantNotFound when nothing matches. Create must return
// ErrDuplicateTenant when the insert violates the uniqueness of subdomain or
// domain, so that callers can tell a lost creation race from a broken store.
// Subdomain and domain are stored lowercase; other values are rejected with
// ErrInvalidTenant. Any other error is treated as the store being unavailable.
type Store interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*Tenant, error)
	GetByDomain(ctx context.Context, domain string) (*Tenant, error)
	Create(ctx context.Context, t *Tenant) (*Tenant, error)
}
