package tenant

import (
	"errors"
	"net/http"

	"github.com/slicterp/erp/pkg/logger"
)

// Propagate creates the edge middleware that classifies the request host
// and hands the result to downstream handlers.
//
// It performs no directory lookup. The classification is attached to the
// context (see HostFromContext) and the derived subdomain or custom domain
// is set on a cloned request under HeaderSubdomain or HeaderDomain. Values
// for those headers sent by the client are dropped from the clone. The
// incoming request and its header map are never modified. Reserved hosts
// get the classification but no tenant header. Skipped requests are not
// classified, but client-supplied tenant headers are still removed.
func Propagate(parser *Parser, opts ...Option) func(http.Handler) http.Handler {
	if parser == nil {
		parser = defaultParser
	}
	cfg := newConfig(opts)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.skipper(r) {
				next.ServeHTTP(w, withoutTenantHeaders(r))
				return
			}

			h := parser.Classify(r.Host)
			if h.Defaulted() {
				cfg.logger.DebugContext(r.Context(), "request without host, using default",
					logger.Error(ErrMalformedHost),
				)
			}

			out := r.Clone(WithHost(r.Context(), h))
			out.Header.Del(HeaderSubdomain)
			out.Header.Del(HeaderDomain)

			switch {
			case h.IsSubdomain():
				out.Header.Set(HeaderSubdomain, h.Name)
			case h.Kind == HostCustomDomain:
				out.Header.Set(HeaderDomain, h.Name)
			}

			next.ServeHTTP(w, out)
		})
	}
}

// withoutTenantHeaders returns r unchanged when it carries no tenant header,
// otherwise a clone with both headers removed.
func withoutTenantHeaders(r *http.Request) *http.Request {
	if len(r.Header.Values(HeaderSubdomain)) == 0 && len(r.Header.Values(HeaderDomain)) == 0 {
		return r
	}
	out := r.Clone(r.Context())
	out.Header.Del(HeaderSubdomain)
	out.Header.Del(HeaderDomain)
	return out
}

// Load creates middleware that resolves the full tenant and stores it in the
// request context. Mount it only on routes that need persisted tenant
// fields; it reuses the classification made by Propagate when present.
//
// Reserved hosts continue without a tenant. Every other failure is passed
// to the error handler.
func Load(resolver *Resolver, opts ...Option) func(http.Handler) http.Handler {
	if resolver == nil {
		panic("tenant: nil resolver")
	}
	cfg := newConfig(opts)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.skipper(r) {
				next.ServeHTTP(w, r)
				return
			}

			t, err := resolver.ResolveRequest(r)
			if err != nil {
				if errors.Is(err, ErrReservedHostname) {
					next.ServeHTTP(w, r)
					return
				}
				if errors.Is(err, ErrDirectoryUnavailable) {
					cfg.logger.ErrorContext(r.Context(), "tenant resolution failed", logger.Error(err))
				} else {
					cfg.logger.DebugContext(r.Context(), "tenant not resolved", logger.Error(err))
				}
				cfg.errorHandler(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), t)))
		})
	}
}

// RequireTenant ensures a tenant is present in the context.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := FromContext(r.Context()); !ok {
				errorHandler(w, r, ErrNoTenantInContext)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
