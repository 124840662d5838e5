package tenant

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

const (
	// HeaderSubdomain carries the classified subdomain to downstream handlers.
	HeaderSubdomain = "X-Tenant-Subdomain"
	// HeaderDomain carries the classified custom domain to downstream handlers.
	HeaderDomain = "X-Tenant-Domain"
)

// DefaultSkipPaths are path prefixes that bypass tenant classification:
// static assets, health checks and the platform API namespace.
var DefaultSkipPaths = []string{
	"/static/",
	"/assets/",
	"/favicon.ico",
	"/robots.txt",
	"/health",
	"/api/platform/",
}

// ErrorHandler handles errors that occur during tenant resolution.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Skipper reports whether a request bypasses tenant handling.
type Skipper func(r *http.Request) bool

// config holds middleware configuration.
type config struct {
	skipper      Skipper
	errorHandler ErrorHandler
	logger       *slog.Logger
}

// Option configures the middleware.
type Option func(*config)

func newConfig(opts []Option) *config {
	cfg := &config{
		skipper:      PathPrefixSkipper(DefaultSkipPaths...),
		errorHandler: defaultErrorHandler,
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithSkipper sets the exclusion predicate. A nil skipper disables skipping.
func WithSkipper(s Skipper) Option {
	return func(c *config) {
		if s == nil {
			s = func(*http.Request) bool { return false }
		}
		c.skipper = s
	}
}

// WithSkipPaths replaces the exclusion predicate with a path prefix match.
func WithSkipPaths(paths ...string) Option {
	return WithSkipper(PathPrefixSkipper(paths...))
}

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(c *config) {
		if handler != nil {
			c.errorHandler = handler
		}
	}
}

// WithLogger sets a custom logger for the middleware.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// PathPrefixSkipper skips requests whose path starts with any of prefixes.
func PathPrefixSkipper(prefixes ...string) Skipper {
	clean := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		if p != "" {
			clean = append(clean, p)
		}
	}
	return func(r *http.Request) bool {
		for _, p := range clean {
			if strings.HasPrefix(r.URL.Path, p) {
				return true
			}
		}
		return false
	}
}

// ErrorStatus maps a resolution error to an HTTP status code.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, ErrTenantNotFound), errors.Is(err, ErrReservedHostname):
		return http.StatusNotFound
	case errors.Is(err, ErrNoTenantInContext):
		return http.StatusBadRequest
	case errors.Is(err, ErrDirectoryUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	status := ErrorStatus(err)
	switch status {
	case http.StatusNotFound:
		http.Error(w, "Tenant not found", status)
	case http.StatusBadRequest:
		http.Error(w, "Tenant required", status)
	case http.StatusServiceUnavailable:
		http.Error(w, "Tenant directory unavailable", status)
	default:
		http.Error(w, "Internal server error", status)
	}
}
