package idp

import "errors"

var (
	// ErrSessionInvalid is returned when a session token does not resolve
	// to an authenticated principal.
	ErrSessionInvalid = errors.New("idp.session_invalid")

	// ErrMembershipNotFound is returned when the principal has no role in
	// the requested organization, or the organization does not exist. The
	// provider does not distinguish the two cases and neither do we.
	ErrMembershipNotFound = errors.New("idp.membership_not_found")

	// ErrProviderUnavailable is returned for transport failures, timeouts
	// and unexpected provider responses. Callers must fail closed on it.
	ErrProviderUnavailable = errors.New("idp.provider_unavailable")

	// ErrInvalidConfig is returned when the client configuration is unusable.
	ErrInvalidConfig = errors.New("idp.invalid_config")
)
