package httpserver

import "errors"

var (
	// ErrStart is returned when the server cannot begin listening or exits
	// with anything other than a clean shutdown.
	ErrStart = errors.New("httpserver.start_failed")

	// ErrShutdown is returned when graceful shutdown does not complete
	// within the shutdown timeout.
	ErrShutdown = errors.New("httpserver.shutdown_failed")
)
