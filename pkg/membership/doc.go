// Package membership resolves a principal's role within a tenant.
//
// The identity provider is the single source of truth for membership; this
// package performs one live lookup per call and never caches, so a revoked
// membership takes effect on the next request. Every failure mode of the
// lookup (non-member, unknown tenant, unknown role string, provider outage,
// timeout, cancellation) collapses into ErrNoAccess.
package membership
