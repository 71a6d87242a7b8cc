package authz

// Role identifies a tenant-scoped role. The set of roles is closed: a
// principal holds exactly one of these per organization, or none at all.
// A Role value outside this set is treated as holding zero permissions.
type Role string

const (
	// RoleClient is a customer of the workshop: read-only access to their
	// organization's vehicles, appointments and invoices.
	RoleClient Role = "client"

	// RoleMember is workshop staff: everything a client can do, plus
	// managing vehicles, assessments and appointments.
	RoleMember Role = "member"

	// RoleAdmin is the organization owner/manager: everything a member can
	// do, plus invoicing and administrative operations.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the closed set of roles.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleMember, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// roleRank orders the closed role set for minimum-role requirements.
// Unknown roles rank below every valid role.
var roleRank = map[Role]int{
	RoleClient: 1,
	RoleMember: 2,
	RoleAdmin:  3,
}

// AtLeast reports whether r ranks at or above min in the role hierarchy.
// An unknown r is below everything; an unknown min is above everything,
// so both directions fail closed.
func (r Role) AtLeast(min Role) bool {
	rr, ok := roleRank[r]
	if !ok {
		return false
	}
	mr, ok := roleRank[min]
	if !ok {
		return false
	}
	return rr >= mr
}

// Permission names a single allowed action, namespaced by resource.
// Permissions are compared exactly and case-sensitively; "vehicles:*" is
// not a permission and matches nothing.
type Permission string

const (
	PermVehiclesRead      Permission = "vehicles:read"
	PermVehiclesWrite     Permission = "vehicles:write"
	PermAssessmentsRead   Permission = "assessments:read"
	PermAssessmentsWrite  Permission = "assessments:write"
	PermAppointmentsRead  Permission = "appointments:read"
	PermAppointmentsWrite Permission = "appointments:write"
	PermInvoicesRead      Permission = "invoices:read"
	PermInvoicesWrite     Permission = "invoices:write"

	// PermAdmin guards organization management operations such as voiding
	// invoices and changing organization settings.
	PermAdmin Permission = "admin"
)

func (p Permission) String() string { return string(p) }

// Grant describes the permissions directly attached to a role and the
// roles it inherits from. Inheritance is resolved once when the registry
// is built; it never recurses at check time.
type Grant struct {
	// Permissions directly granted to the role.
	Permissions []Permission

	// Inherits lists roles whose full permission sets are folded into
	// this role at registry construction.
	Inherits []Role
}
