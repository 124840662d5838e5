package tenant

import (
	"context"
	"fmt"
	"net/http"
)

// Resolver binds a hostname to exactly one tenant.
type Resolver struct {
	directory *Directory
	parser    *Parser
}

// NewResolver creates a resolver. A nil parser means the default parser.
func NewResolver(directory *Directory, parser *Parser) *Resolver {
	if directory == nil {
		panic("tenant: nil directory")
	}
	if parser == nil {
		parser = defaultParser
	}
	return &Resolver{directory: directory, parser: parser}
}

// Parser returns the parser used to classify hosts.
func (r *Resolver) Parser() *Parser {
	return r.parser
}

// Directory returns the underlying tenant directory.
func (r *Resolver) Directory() *Directory {
	return r.directory
}

// Resolve classifies host and resolves it to a tenant.
func (r *Resolver) Resolve(ctx context.Context, host string) (*Tenant, error) {
	return r.ResolveHost(ctx, r.parser.Classify(host))
}

// ResolveHost resolves an already classified host.
//
// Bare localhost falls back to the default tenant. Named subdomains and
// custom domains must exist: an unknown name yields ErrTenantNotFound and is
// never replaced by the default tenant, so misconfigured DNS stays visible.
// Reserved names yield ErrReservedHostname without touching the directory.
func (r *Resolver) ResolveHost(ctx context.Context, h Host) (*Tenant, error) {
	switch h.Kind {
	case HostLocalhostRoot:
		return r.directory.GetOrCreateDefault(ctx)
	case HostLocalhostSubdomain, HostProductionSubdomain:
		return r.directory.FindBySubdomain(ctx, h.Name)
	case HostCustomDomain:
		return r.directory.FindByDomain(ctx, h.Name)
	case HostReserved:
		return nil, fmt.Errorf("%w: %s", ErrReservedHostname, h.Name)
	default:
		return nil, fmt.Errorf("%w: unknown host kind %d", ErrMalformedHost, h.Kind)
	}
}

// ResolveRequest resolves the tenant of req, reusing the classification
// attached by Propagate when there is one.
func (r *Resolver) ResolveRequest(req *http.Request) (*Tenant, error) {
	h, ok := HostFromContext(req.Context())
	if !ok {
		h = r.parser.Classify(req.Host)
	}
	return r.ResolveHost(req.Context(), h)
}
