// Package pgstore implements tenant.Store on PostgreSQL.
//
// The tenants table carries UNIQUE constraints on subdomain and domain.
// Those constraints, not application code, decide which of several
// concurrent inserts of the same tenant wins; the losers receive
// tenant.ErrDuplicateTenant.
package pgstore

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/slicterp/erp/pkg/pg"
	"github.com/slicterp/erp/pkg/tenant"
)

// Migrations holds the goose migrations for the tenants table.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory of Migrations that holds the SQL files.
const MigrationsDir = "migrations"

// DB is the subset of *pgxpool.Pool used by the store.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const columns = `id, subdomain, coalesce(domain, ''), name, company_name, status, created_at, updated_at`

const (
	queryByID        = `SELECT ` + columns + ` FROM tenants WHERE id = $1`
	queryBySubdomain = `SELECT ` + columns + ` FROM tenants WHERE subdomain = $1`
	queryByDomain    = `SELECT ` + columns + ` FROM tenants WHERE domain = $1`
	queryInsert      = `INSERT INTO tenants (id, subdomain, domain, name, company_name, status, created_at, updated_at)
VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8)
RETURNING ` + columns
)

// Store is a PostgreSQL-backed tenant store.
type Store struct {
	db DB
}

var _ tenant.Store = (*Store)(nil)

// New creates a store on top of db, typically a *pgxpool.Pool.
func New(db DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	return s.queryOne(ctx, queryByID, id)
}

func (s *Store) GetBySubdomain(ctx context.Context, subdomain string) (*tenant.Tenant, error) {
	return s.queryOne(ctx, queryBySubdomain, subdomain)
}

func (s *Store) GetByDomain(ctx context.Context, domain string) (*tenant.Tenant, error) {
	if domain == "" {
		return nil, tenant.ErrTenantNotFound
	}
	return s.queryOne(ctx, queryByDomain, domain)
}

// Create inserts t in a single statement. A unique violation on any column
// is reported as tenant.ErrDuplicateTenant and a failed CHECK as
// tenant.ErrInvalidTenant, both naming the violated constraint.
func (s *Store) Create(ctx context.Context, t *tenant.Tenant) (*tenant.Tenant, error) {
	id := t.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	row := s.db.QueryRow(ctx, queryInsert,
		id, t.Subdomain, t.Domain, t.Name, t.CompanyName, string(t.Status), t.CreatedAt, t.UpdatedAt,
	)
	out, err := scan(row)
	if err != nil {
		switch {
		case pg.IsDuplicateKeyError(err):
			return nil, errors.Join(fmt.Errorf("%w: %s", tenant.ErrDuplicateTenant, pg.ConstraintName(err)), err)
		case pg.IsCheckViolationError(err):
			return nil, errors.Join(fmt.Errorf("%w: %s", tenant.ErrInvalidTenant, pg.ConstraintName(err)), err)
		}
		return nil, err
	}
	return out, nil
}

func (s *Store) queryOne(ctx context.Context, query string, arg any) (*tenant.Tenant, error) {
	t, err := scan(s.db.QueryRow(ctx, query, arg))
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, err
	}
	return t, nil
}

func scan(row pgx.Row) (*tenant.Tenant, error) {
	var (
		t      tenant.Tenant
		status string
	)
	if err := row.Scan(
		&t.ID,
		&t.Subdomain,
		&t.Domain,
		&t.Name,
		&t.CompanyName,
		&status,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	t.Status = tenant.Status(status)
	return &t, nil
}
