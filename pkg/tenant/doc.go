// Package tenant binds every inbound request to exactly one tenant before
// any business logic runs.
//
// # Architecture
//
// The package is built from four pieces, leaves first:
//
//  1. Parser - classifies a Host header into one of five kinds: bare
//     localhost, a localhost subdomain, a production subdomain, a custom
//     domain, or a reserved platform name. Pure and total.
//  2. Directory - looks tenants up by subdomain, custom domain or ID over a
//     Store, and creates the fallback "demo" tenant on first use.
//  3. Resolver - runs the Parser and the Directory to produce one tenant or
//     a typed failure.
//  4. Propagate / Load - HTTP middleware. Propagate only classifies and
//     forwards the result (context value plus X-Tenant-Subdomain or
//     X-Tenant-Domain on a cloned request); Load performs the full lookup
//     on the routes that need the persisted tenant.
//
// # Usage
//
//	import "github.com/slicterp/erp/pkg/tenant"
//
//	parser := tenant.NewParser()
//	dir := tenant.NewDirectory(store, tenant.WithCache(tenant.NewMemoryCache(0, 0)))
//	resolver := tenant.NewResolver(dir, parser)
//
//	r := chi.NewRouter()
//	r.Use(tenant.Propagate(parser))
//	r.Group(func(r chi.Router) {
//		r.Use(tenant.Load(resolver))
//		r.Get("/dashboard", func(w http.ResponseWriter, r *http.Request) {
//			t := tenant.MustFromContext(r.Context())
//			// ...
//		})
//	})
//
// # Resolution rules
//
//   - "localhost", "localhost:3000": the default tenant, created if missing.
//   - "acme.localhost:3000", "acme.slicterp.com": the tenant with subdomain
//     "acme", or ErrTenantNotFound. Unknown names never fall back to the
//     default tenant.
//   - "shop.example": the tenant owning that custom domain, or ErrTenantNotFound.
//   - "www.*", "api.*", "admin.*", "app.*": ErrReservedHostname, no lookup.
//
// # Concurrency
//
// The default tenant may be requested by many first requests at once,
// possibly on different instances. The Directory does not lock; it relies on
// the store rejecting a second row with the same subdomain
// (ErrDuplicateTenant) and then reads the winning row back once.
//
// # Error Handling
//
//   - ErrReservedHostname: platform-level host, serve without a tenant.
//   - ErrTenantNotFound: unknown subdomain or domain, usually a 404.
//   - ErrDirectoryUnavailable: store failure, usually a 503.
//   - ErrCreateRaceExhausted: default tenant could not be read back after a
//     conflicting insert; matches ErrDirectoryUnavailable.
package tenant
