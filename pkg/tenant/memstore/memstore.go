// Package memstore is an in-memory tenant.Store with the same uniqueness
// guarantees as the Postgres store. It is meant for development and tests.
package memstore

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/slicterp/erp/pkg/tenant"
)

// Store keeps tenants in maps indexed by ID, subdomain and domain.
type Store struct {
	mu          sync.RWMutex
	byID        map[uuid.UUID]tenant.Tenant
	bySubdomain map[string]uuid.UUID
	byDomain    map[string]uuid.UUID
}

var _ tenant.Store = (*Store)(nil)

// New creates an empty store seeded with the given tenants. It panics if the
// seed violates a uniqueness constraint.
func New(seed ...*tenant.Tenant) *Store {
	s := &Store{
		byID:        make(map[uuid.UUID]tenant.Tenant),
		bySubdomain: make(map[string]uuid.UUID),
		byDomain:    make(map[string]uuid.UUID),
	}
	for _, t := range seed {
		if _, err := s.Create(context.Background(), t); err != nil {
			panic("memstore: invalid seed: " + err.Error())
		}
	}
	return s
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.get(id)
}

func (s *Store) GetBySubdomain(ctx context.Context, subdomain string) (*tenant.Tenant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.bySubdomain[subdomain]
	if !ok {
		return nil, tenant.ErrTenantNotFound
	}
	return s.get(id)
}

func (s *Store) GetByDomain(ctx context.Context, domain string) (*tenant.Tenant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if domain == "" {
		return nil, tenant.ErrTenantNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byDomain[domain]
	if !ok {
		return nil, tenant.ErrTenantNotFound
	}
	return s.get(id)
}

// Create inserts t. It returns tenant.ErrInvalidTenant when the subdomain or
// domain is not lowercase and tenant.ErrDuplicateTenant when the ID,
// subdomain or domain is already taken. A zero ID is replaced with a new one.
func (s *Store) Create(ctx context.Context, t *tenant.Tenant) (*tenant.Tenant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if t.Subdomain != strings.ToLower(t.Subdomain) {
		return nil, fmt.Errorf("%w: subdomain %q is not lowercase", tenant.ErrInvalidTenant, t.Subdomain)
	}
	if t.Domain != strings.ToLower(t.Domain) {
		return nil, fmt.Errorf("%w: domain %q is not lowercase", tenant.ErrInvalidTenant, t.Domain)
	}

	row := *t
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[row.ID]; ok {
		return nil, tenant.ErrDuplicateTenant
	}
	if _, ok := s.bySubdomain[row.Subdomain]; ok {
		return nil, tenant.ErrDuplicateTenant
	}
	if row.Domain != "" {
		if _, ok := s.byDomain[row.Domain]; ok {
			return nil, tenant.ErrDuplicateTenant
		}
		s.byDomain[row.Domain] = row.ID
	}
	s.byID[row.ID] = row
	s.bySubdomain[row.Subdomain] = row.ID

	out := row
	return &out, nil
}

// Len returns the number of stored tenants.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// Must be called with lock held.
func (s *Store) get(id uuid.UUID) (*tenant.Tenant, error) {
	row, ok := s.byID[id]
	if !ok {
		return nil, tenant.ErrTenantNotFound
	}
	return &row, nil
}
