package gate

import "github.com/wrenchly/wrenchly/pkg/authz"

// requirementKind selects the evaluation rule for a Requirement.
type requirementKind int

const (
	requireNone requirementKind = iota
	requireOne
	requireAny
	requireAll
	requireMinRole
)

// Requirement declares what a route demands of the caller's role. Routes
// declare requirements inline when they register with the router.
type Requirement struct {
	kind        requirementKind
	permissions []authz.Permission
	minRole     authz.Role
}

// MembershipOnly requires a membership in the tenant but no particular
// permission. Used for landing pages every member of an organization may see.
func MembershipOnly() Requirement {
	return Requirement{kind: requireNone}
}

// Permission requires a single permission.
func Permission(p authz.Permission) Requirement {
	return Requirement{kind: requireOne, permissions: []authz.Permission{p}}
}

// AnyOf requires at least one of the listed permissions. An empty list
// never passes; a requirement that demands nothing is a programming error,
// not a free pass.
func AnyOf(perms ...authz.Permission) Requirement {
	return Requirement{kind: requireAny, permissions: perms}
}

// AllOf requires every one of the listed permissions. An empty list is
// vacuously satisfied.
func AllOf(perms ...authz.Permission) Requirement {
	return Requirement{kind: requireAll, permissions: perms}
}

// MinRole requires the caller's role to rank at or above min in the role
// hierarchy.
func MinRole(min authz.Role) Requirement {
	return Requirement{kind: requireMinRole, minRole: min}
}

// satisfiedBy evaluates the requirement against a role using the registry.
func (q Requirement) satisfiedBy(reg *authz.Registry, role authz.Role) bool {
	switch q.kind {
	case requireNone:
		return true
	case requireOne:
		return reg.Can(role, q.permissions[0])
	case requireAny:
		return reg.CanAny(role, q.permissions...)
	case requireAll:
		return reg.CanAll(role, q.permissions...)
	case requireMinRole:
		return role.AtLeast(q.minRole)
	default:
		return false
	}
}
