// Package idp is the HTTP client for the hosted identity provider.
//
// The provider owns sessions, organizations, membership and role assignment;
// this package only reads that state. It exposes two calls: resolving the
// principal behind a session token, and looking up a principal's role inside
// an organization. Neither result is cached here, so every authorization
// decision observes the provider's live state.
//
// All failures collapse into a small sentinel error set. Callers must treat
// ErrProviderUnavailable the same way they treat ErrMembershipNotFound:
// as no access.
package idp
