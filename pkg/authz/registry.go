package authz

import (
	"errors"
	"fmt"
	"slices"
)

// Registry maps roles to their full, flattened permission sets.
// It is immutable after construction and safe for concurrent reads.
type Registry struct {
	// grants holds every permission (direct and inherited) per role.
	// Never mutated after NewRegistry returns.
	grants map[Role]map[Permission]struct{}
}

// DefaultGrants returns the hand-authored role table for the application.
// Inheritance expresses the hierarchy client < member < admin, so an admin
// holds every permission a member does, and a member every permission a
// client does.
func DefaultGrants() map[Role]Grant {
	return map[Role]Grant{
		RoleClient: {
			Permissions: []Permission{
				PermVehiclesRead,
				PermAppointmentsRead,
				PermInvoicesRead,
			},
		},
		RoleMember: {
			Permissions: []Permission{
				PermVehiclesWrite,
				PermAssessmentsRead,
				PermAssessmentsWrite,
				PermAppointmentsWrite,
			},
			Inherits: []Role{RoleClient},
		},
		RoleAdmin: {
			Permissions: []Permission{
				PermInvoicesWrite,
				PermAdmin,
			},
			Inherits: []Role{RoleMember},
		},
	}
}

// NewRegistry builds a registry from a grant table, flattening inheritance
// so that every later lookup is a single map access. It rejects tables that
// inherit from undefined roles or contain inheritance cycles; a broken table
// should prevent startup, not surface as mysterious denials at request time.
func NewRegistry(table map[Role]Grant) (*Registry, error) {
	for role := range table {
		if err := checkInheritance(role, table, []Role{role}); err != nil {
			return nil, err
		}
	}

	grants := make(map[Role]map[Permission]struct{}, len(table))
	for role := range table {
		set := make(map[Permission]struct{})
		collect(role, table, set, make(map[Role]bool))
		grants[role] = set
	}

	return &Registry{grants: grants}, nil
}

// PermissionsFor returns the full permission set of a role, sorted for
// stable output. It is total: unknown roles yield an empty set, never an
// error.
func (r *Registry) PermissionsFor(role Role) []Permission {
	set, ok := r.grants[role]
	if !ok {
		return nil
	}
	perms := make([]Permission, 0, len(set))
	for p := range set {
		perms = append(perms, p)
	}
	slices.Sort(perms)
	return perms
}

// Can reports whether the role holds the permission. A role outside the
// registry holds nothing.
func (r *Registry) Can(role Role, permission Permission) bool {
	set, ok := r.grants[role]
	if !ok {
		return false
	}
	_, ok = set[permission]
	return ok
}

// CanAny reports whether the role holds at least one of the permissions.
// An empty permission list is a caller error and evaluates to false; a
// requirement that demands nothing must not become an implicit allow.
func (r *Registry) CanAny(role Role, permissions ...Permission) bool {
	set, ok := r.grants[role]
	if !ok {
		return false
	}
	for _, p := range permissions {
		if _, ok := set[p]; ok {
			return true
		}
	}
	return false
}

// CanAll reports whether permissions is a subset of the role's permission
// set. An empty permission list is vacuously true for every role, including
// roles outside the registry, whose set is empty. The asymmetry with CanAny
// is intentional.
func (r *Registry) CanAll(role Role, permissions ...Permission) bool {
	set := r.grants[role]
	for _, p := range permissions {
		if _, ok := set[p]; !ok {
			return false
		}
	}
	return true
}

// Roles returns every role in the registry, sorted.
func (r *Registry) Roles() []Role {
	roles := make([]Role, 0, len(r.grants))
	for role := range r.grants {
		roles = append(roles, role)
	}
	slices.Sort(roles)
	return roles
}

// collect folds the permissions of role and everything it inherits into set.
// The visited map guards against revisiting shared ancestors.
func collect(role Role, table map[Role]Grant, set map[Permission]struct{}, visited map[Role]bool) {
	if visited[role] {
		return
	}
	visited[role] = true

	grant, ok := table[role]
	if !ok {
		return
	}
	for _, p := range grant.Permissions {
		set[p] = struct{}{}
	}
	for _, parent := range grant.Inherits {
		collect(parent, table, set, visited)
	}
}

// checkInheritance walks the inheritance references of role, rejecting
// undefined targets and cycles.
func checkInheritance(role Role, table map[Role]Grant, path []Role) error {
	grant, ok := table[role]
	if !ok {
		return errors.Join(ErrUnknownInheritedRole, fmt.Errorf("role %q inherits undefined role", path[len(path)-2]))
	}

	for _, parent := range grant.Inherits {
		if slices.Contains(path, parent) {
			return errors.Join(ErrCircularInheritance, fmt.Errorf("cycle: %q -> %q", role, parent))
		}
		if err := checkInheritance(parent, table, append(path, parent)); err != nil {
			return err
		}
	}
	return nil
}
