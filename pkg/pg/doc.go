// Package pg wraps the pgx/v5 driver with the few things a service needs at
// startup and when interpreting query errors.
//
//   - Config: pool limits, retry policy and migration settings, populated
//     from environment variables via github.com/caarlos0/env.
//   - Connect: opens a *pgxpool.Pool and pings it, retrying with a growing
//     delay until the database is reachable or the context ends.
//   - Migrate: applies goose migrations from an fs.FS over the same pool.
//   - Healthcheck: a func(context.Context) error for readiness checks.
//   - IsNotFoundError, IsDuplicateKeyError, IsCheckViolationError and
//     ConstraintName:
//     classify driver errors without leaking pgx types to callers.
//
// # Usage
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, pgstore.Migrations, pgstore.MigrationsDir, log); err != nil {
//		return err
//	}
package pg
