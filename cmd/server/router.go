package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/slicterp/erp/pkg/httpserver"
	"github.com/slicterp/erp/pkg/logger"
	"github.com/slicterp/erp/pkg/requestid"
	"github.com/slicterp/erp/pkg/tenant"
)

// RouterOptions holds the dependencies of the HTTP surface.
type RouterOptions struct {
	Resolver         *tenant.Resolver
	Logger           *slog.Logger
	TenantOptions    []tenant.Option
	Readiness        map[string]httpserver.Check
	ReadinessTimeout time.Duration
}

// Router mounts request ID and host classification on every route, and
// full tenant loading on the tenant API group.
func Router(opts RouterOptions) chi.Router {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	tenantOpts := append([]tenant.Option{tenant.WithLogger(opts.Logger)}, opts.TenantOptions...)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(tenant.Propagate(opts.Resolver.Parser(), tenantOpts...))

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(opts.Logger, opts.ReadinessTimeout, opts.Readiness))

	r.Get("/api/host", hostInfo(opts.Logger))

	r.Group(func(app chi.Router) {
		app.Use(tenant.Load(opts.Resolver, tenantOpts...))
		app.Use(tenant.RequireTenant(nil))
		app.Get("/api/tenant", currentTenant(opts.Logger))
	})

	return r
}

type hostResponse struct {
	Kind      string `json:"kind"`
	Name      string `json:"name,omitempty"`
	Subdomain string `json:"subdomain,omitempty"`
	Domain    string `json:"domain,omitempty"`
}

// hostInfo reports the classification made by tenant.Propagate without
// touching the directory.
func hostInfo(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, ok := tenant.HostFromContext(r.Context())
		if !ok {
			http.Error(w, "Host not classified", http.StatusBadRequest)
			return
		}
		writeJSON(w, r, log, http.StatusOK, hostResponse{
			Kind:      h.Kind.String(),
			Name:      h.Name,
			Subdomain: r.Header.Get(tenant.HeaderSubdomain),
			Domain:    r.Header.Get(tenant.HeaderDomain),
		})
	}
}

func currentTenant(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, log, http.StatusOK, tenant.MustFromContext(r.Context()))
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, log *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.ErrorContext(r.Context(), "failed to write response", logger.Error(err))
	}
}
