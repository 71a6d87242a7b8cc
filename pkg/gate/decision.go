package gate

import (
	"github.com/google/uuid"

	"github.com/wrenchly/wrenchly/pkg/authz"
	"github.com/wrenchly/wrenchly/pkg/idp"
)

// Decision is the terminal outcome of one gate invocation.
type Decision int

const (
	// Allowed means the request may proceed.
	Allowed Decision = iota

	// DeniedNoPrincipal means no authenticated session was presented.
	DeniedNoPrincipal

	// DeniedNoMembership means the principal has no role in the requested
	// tenant. A nonexistent tenant produces the same decision, so a denial
	// never confirms that a tenant exists.
	DeniedNoMembership

	// DeniedInsufficientPermission means the principal's role in the tenant
	// lacks the route's required permissions.
	DeniedInsufficientPermission
)

// String returns the decision kind as exposed in API rejections and logs.
func (d Decision) String() string {
	switch d {
	case Allowed:
		return "allowed"
	case DeniedNoPrincipal:
		return "unauthenticated"
	case DeniedNoMembership:
		return "no_membership"
	case DeniedInsufficientPermission:
		return "insufficient_permission"
	default:
		return "unknown"
	}
}

// Result bundles a decision with the facts it was made from. Principal and
// Role are populated only as far as the check progressed: a
// DeniedNoPrincipal result carries neither, a DeniedNoMembership result
// carries only the principal.
type Result struct {
	Decision  Decision
	Principal *idp.Principal
	TenantID  uuid.UUID
	Role      authz.Role
}

// Allowed reports whether the request may proceed.
func (r Result) Allowed() bool {
	return r.Decision == Allowed
}
