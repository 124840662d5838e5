package tenant

import "time"

// Config is the environment-driven configuration of the tenant layer.
type Config struct {
	ReservedNames    []string      `env:"TENANT_RESERVED_NAMES" envDefault:"www,api,admin,app" envSeparator:","`                                             // ReservedNames are labels that never map to a tenant.
	DefaultHost      string        `env:"TENANT_DEFAULT_HOST" envDefault:"localhost:3000"`                                                                   // DefaultHost replaces a missing Host header.
	DefaultSubdomain string        `env:"TENANT_DEFAULT_SUBDOMAIN" envDefault:"demo"`                                                                        // DefaultSubdomain identifies the fallback tenant.
	DefaultName      string        `env:"TENANT_DEFAULT_NAME" envDefault:"Demo"`                                                                             // DefaultName is the display name of a created fallback tenant.
	DefaultCompany   string        `env:"TENANT_DEFAULT_COMPANY" envDefault:"Demo Company"`                                                                  // DefaultCompany is the company name of a created fallback tenant.
	SkipPaths        []string      `env:"TENANT_SKIP_PATHS" envDefault:"/static/,/assets/,/favicon.ico,/robots.txt,/health,/api/platform/" envSeparator:","` // SkipPaths bypass tenant classification.
	CacheSize        int           `env:"TENANT_CACHE_SIZE" envDefault:"1000"`                                                                               // CacheSize bounds the in-process tenant cache.
	CacheTTL         time.Duration `env:"TENANT_CACHE_TTL" envDefault:"5m"`                                                                                  // CacheTTL is how long a resolved tenant stays cached.
}

// NewParserFromConfig creates a Parser from Config. Only non-empty values
// are applied; extra options are applied last.
func NewParserFromConfig(cfg Config, opts ...ParserOption) *Parser {
	configOpts := make([]ParserOption, 0, 2+len(opts))
	if len(cfg.ReservedNames) > 0 {
		configOpts = append(configOpts, WithReservedNames(cfg.ReservedNames...))
	}
	if cfg.DefaultHost != "" {
		configOpts = append(configOpts, WithDefaultHost(cfg.DefaultHost))
	}
	return NewParser(append(configOpts, opts...)...)
}

// NewDirectoryFromConfig creates a Directory from Config. Extra options are
// applied last.
func NewDirectoryFromConfig(store Store, cfg Config, opts ...DirectoryOption) *Directory {
	configOpts := []DirectoryOption{
		WithDefaultTenant(cfg.DefaultSubdomain, cfg.DefaultName, cfg.DefaultCompany),
	}
	return NewDirectory(store, append(configOpts, opts...)...)
}

// MiddlewareOptions returns the middleware options implied by Config.
func (cfg Config) MiddlewareOptions() []Option {
	if len(cfg.SkipPaths) == 0 {
		return nil
	}
	return []Option{WithSkipPaths(cfg.SkipPaths...)}
}
