package tenant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/slicterp/erp/pkg/logger"
)

const (
	// DefaultSubdomain is the subdomain of the fallback tenant used for bare
	// local access.
	DefaultSubdomain = "demo"
	// DefaultTenantName is the display name given to a freshly created
	// fallback tenant.
	DefaultTenantName = "Demo"
	// DefaultCompanyName is the company name given to a freshly created
	// fallback tenant.
	DefaultCompanyName = "Demo Company"
)

// Directory looks tenants up by subdomain, custom domain or identifier and
// owns the creation of the fallback tenant.
//
// It holds no in-process locks: the store's uniqueness constraint on
// subdomain is the only thing that serializes concurrent creation, which
// keeps the guarantee intact across processes.
type Directory struct {
	store  Store
	cache  Cache
	logger *slog.Logger
	now    func() time.Time

	defaultSubdomain string
	defaultName      string
	defaultCompany   string
}

// DirectoryOption configures a Directory.
type DirectoryOption func(*Directory)

// WithCache puts a cache in front of the store lookups.
func WithCache(c Cache) DirectoryOption {
	return func(d *Directory) {
		if c != nil {
			d.cache = c
		}
	}
}

// WithDirectoryLogger sets the logger used for creation and failure events.
func WithDirectoryLogger(l *slog.Logger) DirectoryOption {
	return func(d *Directory) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithDefaultTenant overrides the fallback tenant literals. Empty values
// keep the current setting. The subdomain is lowercased to match what the
// Parser extracts from hosts.
func WithDefaultTenant(subdomain, name, company string) DirectoryOption {
	return func(d *Directory) {
		if subdomain = strings.ToLower(strings.TrimSpace(subdomain)); subdomain != "" {
			d.defaultSubdomain = subdomain
		}
		if name != "" {
			d.defaultName = name
		}
		if company != "" {
			d.defaultCompany = company
		}
	}
}

// NewDirectory creates a directory over store. Caching is off by default.
func NewDirectory(store Store, opts ...DirectoryOption) *Directory {
	if store == nil {
		panic("tenant: nil store")
	}
	d := &Directory{
		store:            store,
		cache:            NoOpCache{},
		logger:           slog.New(slog.DiscardHandler),
		now:              time.Now,
		defaultSubdomain: DefaultSubdomain,
		defaultName:      DefaultTenantName,
		defaultCompany:   DefaultCompanyName,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DefaultSubdomain returns the subdomain of the fallback tenant.
func (d *Directory) DefaultSubdomain() string {
	return d.defaultSubdomain
}

// FindBySubdomain returns the tenant with the given subdomain.
func (d *Directory) FindBySubdomain(ctx context.Context, subdomain string) (*Tenant, error) {
	return d.lookup(ctx, CacheKeyBySubdomain(subdomain), subdomain, d.store.GetBySubdomain)
}

// FindByDomain returns the tenant owning the given custom domain.
func (d *Directory) FindByDomain(ctx context.Context, domain string) (*Tenant, error) {
	return d.lookup(ctx, CacheKeyByDomain(domain), domain, d.store.GetByDomain)
}

// FindByID returns the tenant with the given identifier.
func (d *Directory) FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	return d.lookup(ctx, CacheKeyByID(id), id.String(), func(ctx context.Context, _ string) (*Tenant, error) {
		return d.store.GetByID(ctx, id)
	})
}

// GetOrCreateDefault returns the fallback tenant, creating it on first use.
//
// Concurrent first calls may all miss and attempt the insert. Exactly one
// insert succeeds; the losers get ErrDuplicateTenant from the store and read
// the winner's row back once. If that read still misses, the store is
// inconsistent and ErrCreateRaceExhausted is returned.
func (d *Directory) GetOrCreateDefault(ctx context.Context) (*Tenant, error) {
	t, err := d.FindBySubdomain(ctx, d.defaultSubdomain)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, ErrTenantNotFound) {
		return nil, err
	}

	now := d.now().UTC()
	created, err := d.store.Create(ctx, &Tenant{
		ID:          uuid.New(),
		Subdomain:   d.defaultSubdomain,
		Name:        d.defaultName,
		CompanyName: d.defaultCompany,
		Status:      StatusTrial,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	switch {
	case err == nil:
		d.logger.InfoContext(ctx, "default tenant created",
			logger.TenantID(created.ID),
			logger.Subdomain(created.Subdomain),
		)
		d.remember(ctx, created)
		return created, nil
	case errors.Is(err, ErrDuplicateTenant):
		d.logger.DebugContext(ctx, "default tenant created concurrently, reading it back",
			logger.Subdomain(d.defaultSubdomain),
		)
	default:
		return nil, d.unavailable(ctx, "create default tenant", err)
	}

	t, err = d.store.GetBySubdomain(ctx, d.defaultSubdomain)
	switch {
	case err == nil:
		d.remember(ctx, t)
		return t, nil
	case errors.Is(err, ErrTenantNotFound):
		d.logger.ErrorContext(ctx, "default tenant missing after conflicting insert",
			logger.Subdomain(d.defaultSubdomain),
			logger.Error(ErrCreateRaceExhausted),
		)
		return nil, ErrCreateRaceExhausted
	default:
		return nil, d.unavailable(ctx, "read default tenant", err)
	}
}

func (d *Directory) lookup(
	ctx context.Context,
	cacheKey, key string,
	get func(ctx context.Context, key string) (*Tenant, error),
) (*Tenant, error) {
	if t, ok := d.cache.Get(ctx, cacheKey); ok {
		return t, nil
	}

	t, err := get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTenantNotFound, key)
		}
		return nil, d.unavailable(ctx, "lookup tenant", err)
	}

	d.remember(ctx, t)
	return t, nil
}

// remember caches t under every key it can be looked up by. Cache failures
// only cost a future store round trip, so they are logged and dropped.
func (d *Directory) remember(ctx context.Context, t *Tenant) {
	keys := []string{CacheKeyByID(t.ID), CacheKeyBySubdomain(t.Subdomain)}
	if t.HasDomain() {
		keys = append(keys, CacheKeyByDomain(t.Domain))
	}
	for _, k := range keys {
		if err := d.cache.Set(ctx, k, t); err != nil {
			d.logger.WarnContext(ctx, "failed to cache tenant", logger.TenantID(t.ID), logger.Error(err))
		}
	}
}

func (d *Directory) unavailable(ctx context.Context, op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	d.logger.ErrorContext(ctx, "tenant store failure", slog.String("op", op), logger.Error(err))
	return errors.Join(ErrDirectoryUnavailable, err)
}
