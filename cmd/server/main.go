// Command server serves the tenant-aware HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/slicterp/erp/pkg/config"
	"github.com/slicterp/erp/pkg/httpserver"
	"github.com/slicterp/erp/pkg/logger"
	"github.com/slicterp/erp/pkg/pg"
	"github.com/slicterp/erp/pkg/redis"
	"github.com/slicterp/erp/pkg/requestid"
	"github.com/slicterp/erp/pkg/tenant"
	"github.com/slicterp/erp/pkg/tenant/memstore"
	"github.com/slicterp/erp/pkg/tenant/pgstore"
	"github.com/slicterp/erp/pkg/tenant/rediscache"
)

// Store drivers selectable with TENANT_STORE.
const (
	storePostgres = "postgres"
	storeMemory   = "memory"
)

var errUnknownStore = errors.New("unknown tenant store driver")

type appConfig struct {
	Store string `env:"TENANT_STORE" envDefault:"postgres"` // Store selects the tenant store: postgres or memory.
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("server exited", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg    appConfig
		logCfg    logger.Config
		redisCfg  redis.Config
		tenantCfg tenant.Config
		httpCfg   httpserver.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&appCfg) },
		func() error { return config.Load(&logCfg) },
		func() error { return config.Load(&redisCfg) },
		func() error { return config.Load(&tenantCfg) },
		func() error { return config.Load(&httpCfg) },
	} {
		if err := load(); err != nil {
			return err
		}
	}

	log := logger.NewFromConfig(logCfg,
		logger.WithContextExtractors(requestid.LoggerExtractor(), tenant.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	checks := make(map[string]httpserver.Check)

	store, closeStore, err := openStore(ctx, appCfg.Store, log, checks)
	if err != nil {
		return err
	}
	defer closeStore()

	var cache tenant.Cache = tenant.NewMemoryCache(tenantCfg.CacheSize, tenantCfg.CacheTTL)
	if redisCfg.Enabled() {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()

		cache = rediscache.New(client,
			rediscache.WithTTL(tenantCfg.CacheTTL),
			rediscache.WithLogger(log.With(logger.Component("tenant_cache"))),
		)
		checks["redis"] = redis.Healthcheck(client)
	}

	dir := tenant.NewDirectoryFromConfig(store, tenantCfg,
		tenant.WithCache(cache),
		tenant.WithDirectoryLogger(log.With(logger.Component("tenant_directory"))),
	)
	resolver := tenant.NewResolver(dir, tenant.NewParserFromConfig(tenantCfg))

	router := Router(RouterOptions{
		Resolver:         resolver,
		Logger:           log,
		TenantOptions:    tenantCfg.MiddlewareOptions(),
		Readiness:        checks,
		ReadinessTimeout: httpCfg.ReadinessTimeout,
	})

	return httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log)).Run(ctx, router)
}

// openStore builds the tenant store selected by driver and registers its
// readiness check.
func openStore(ctx context.Context, driver string, log *slog.Logger, checks map[string]httpserver.Check) (tenant.Store, func(), error) {
	switch driver {
	case storeMemory:
		log.WarnContext(ctx, "using in-memory tenant store, data is lost on restart")
		return memstore.New(), func() {}, nil

	case storePostgres, "":
		var pgCfg pg.Config
		if err := config.Load(&pgCfg); err != nil {
			return nil, nil, err
		}
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return nil, nil, err
		}
		if pgCfg.AutoMigrate {
			if err := pg.Migrate(ctx, pool, pgCfg, pgstore.Migrations, pgstore.MigrationsDir, log); err != nil {
				pool.Close()
				return nil, nil, err
			}
		}
		checks["postgres"] = pg.Healthcheck(pool)
		return pgstore.New(pool), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", errUnknownStore, driver)
	}
}
