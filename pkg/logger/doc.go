// Package logger builds context-aware slog loggers.
//
// New creates a *slog.Logger from functional options; NewFromConfig does the
// same from an env-tagged Config. The handler is wrapped with
// LogHandlerDecorator, which runs the registered ContextExtractor callbacks
// on every record so request-scoped values (request ID, tenant) end up in
// the output without being passed around explicitly.
//
//	log := logger.NewFromConfig(cfg,
//		logger.WithContextExtractors(
//			requestid.LoggerExtractor(),
//			tenant.LoggerExtractor(),
//		),
//	)
//	log.InfoContext(ctx, "tenant resolved", logger.TenantID(t.ID))
//
// Attribute helpers in attr.go keep key names consistent across packages.
package logger
