// Package logger provides a context-aware wrapper around Go's slog package
// adding functional options for configuration, helper attribute constructors,
// and transparent injection of values stored in context.Context.
//
// New creates a *slog.Logger configured by Option functions: output format
// (text or json), minimum level, static attributes, and ContextExtractor
// callbacks that pull request-scoped values (request id, tenant id,
// principal id, role) out of the context on every log call.
//
// Helper constructors in attr.go keep attribute naming consistent across
// the codebase, so a tenant id is always logged as "tenant_id" no matter
// which subsystem writes the record.
//
//	log := logger.New(
//	    logger.WithProduction("wrenchly"),
//	    logger.WithContextExtractors(gate.LoggerExtractors()...),
//	)
//	logger.SetAsDefault(log)
package logger
