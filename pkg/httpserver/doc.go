// Package httpserver runs the HTTP surface with graceful shutdown.
//
// A Server is built with [New] or [NewFromConfig] and serves a handler via
// [Server.Run], which blocks until the context is cancelled, SIGINT or
// SIGTERM arrives, or the listener fails. In-flight requests get the
// shutdown timeout to drain. [WithStartHook] and [WithStopHook] attach
// lifecycle logging.
//
// [HealthCheckHandler] serves liveness and readiness probes, taking its
// readiness checks from the pg and redis packages.
//
// Failures to start wrap [ErrStart]; shutdown failures wrap [ErrShutdown].
// Inspect them with errors.Is.
package httpserver
