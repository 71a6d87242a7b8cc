package redis

import "errors"

var (
	// ErrInvalidConfig is returned when the connection URL cannot be parsed.
	ErrInvalidConfig = errors.New("redis.invalid_config")

	// ErrNotReady is returned when the server did not answer a ping within
	// the configured retry budget.
	ErrNotReady = errors.New("redis.not_ready")

	// ErrHealthcheckFailed is returned by the readiness probe when the
	// server cannot be reached.
	ErrHealthcheckFailed = errors.New("redis.healthcheck_failed")
)
