// Package ratelimiter implements a token bucket rate limiter with
// pluggable storage backends.
//
// The in-memory store suits single-instance deployments and tests; the
// Redis store shares bucket state across instances so a client cannot
// multiply their budget by hitting different replicas. The middleware is
// applied to unauthenticated entry points (sign-in, public API paths)
// where the authorization gate cannot identify an abuser by principal.
package ratelimiter
