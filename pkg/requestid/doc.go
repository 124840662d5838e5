// Package requestid assigns every HTTP request an identifier that is echoed
// in the X-Request-ID response header and attached to log records.
//
// Mount Middleware first so later middleware, including tenant resolution,
// logs with the ID:
//
//	r.Use(requestid.Middleware)
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//
// Incoming IDs are reused only when they are at most 128 characters of
// letters, digits, '-' and '_'; anything else is replaced by a UUID.
package requestid
