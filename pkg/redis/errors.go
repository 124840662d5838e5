package redis

import "errors"

var (
	// ErrEmptyConnectionURL is returned by Connect when no URL is configured.
	ErrEmptyConnectionURL = errors.New("empty redis connection URL")
	// ErrFailedToParseRedisConnString wraps URL parsing failures.
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	// ErrRedisNotReady is returned when the server did not answer in time.
	ErrRedisNotReady = errors.New("redis did not become ready within the given time period")
	// ErrHealthcheckFailed is returned by the readiness check.
	ErrHealthcheckFailed = errors.New("redis healthcheck failed")
)
