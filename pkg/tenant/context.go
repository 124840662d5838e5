package tenant

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/slicterp/erp/pkg/logger"
)

// contextKey prevents collisions with other packages using context values
type contextKey struct{}

type hostContextKey struct{}

func WithTenant(ctx context.Context, tenant *Tenant) context.Context {
	return context.WithValue(ctx, contextKey{}, tenant)
}

func FromContext(ctx context.Context) (*Tenant, bool) {
	tenant, ok := ctx.Value(contextKey{}).(*Tenant)
	return tenant, ok && tenant != nil
}

// IDFromContext provides fast access to tenant ID without exposing full tenant data
func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	tenant, ok := FromContext(ctx)
	if !ok {
		return uuid.UUID{}, false
	}
	return tenant.ID, true
}

// MustFromContext panics if no tenant is found. Use only in handlers
// that absolutely require a tenant to function.
func MustFromContext(ctx context.Context) *Tenant {
	tenant, ok := FromContext(ctx)
	if !ok {
		panic("tenant: no tenant in context")
	}
	return tenant
}

// WithHost attaches a host classification to the context.
func WithHost(ctx context.Context, h Host) context.Context {
	return context.WithValue(ctx, hostContextKey{}, h)
}

// HostFromContext returns the classification attached by Propagate.
func HostFromContext(ctx context.Context) (Host, bool) {
	h, ok := ctx.Value(hostContextKey{}).(Host)
	return h, ok
}

// LoggerExtractor returns a function that enriches log records with the
// tenant ID, or with the classified host when the tenant is not loaded yet.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := IDFromContext(ctx); ok {
			return logger.TenantID(id), true
		}
		if h, ok := HostFromContext(ctx); ok {
			return logger.Host(h.String()), true
		}
		return slog.Attr{}, false
	}
}
