package authz

import "errors"

// Construction errors. Permission checks themselves never return errors;
// they evaluate to false for anything the registry does not know.
var (
	// ErrUnknownInheritedRole is returned when a grant inherits from a role
	// that has no entry in the table.
	ErrUnknownInheritedRole = errors.New("authz.unknown_inherited_role")

	// ErrCircularInheritance is returned when the grant table's inheritance
	// references form a cycle.
	ErrCircularInheritance = errors.New("authz.circular_inheritance")
)
