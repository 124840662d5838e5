// Package httpserver runs an http.Server with graceful shutdown and exposes
// liveness and readiness handlers.
//
// Run blocks until the supplied context is cancelled or the process receives
// SIGINT or SIGTERM, then drains in-flight requests within the configured
// shutdown timeout:
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Probes are plain handlers so they can be mounted on any router:
//
//	r.Get("/health/live", httpserver.LivenessHandler())
//	r.Get("/health/ready", httpserver.ReadinessHandler(log, 2*time.Second, map[string]httpserver.Check{
//		"postgres": pg.Healthcheck(pool),
//	}))
//
// A readiness failure answers 503 so load balancers stop routing to the
// instance while a dependency such as the tenant store is down.
//
// Errors returned by Run and Shutdown wrap ErrStart and ErrShutdown.
package httpserver
