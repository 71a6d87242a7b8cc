// Package authz provides the role-permission registry and decision
// functions used by every protected entry point in the application.
//
// Roles and permissions are closed, typed sets: a Role is one of the
// tenant-scoped roles a principal may hold inside an organization, and a
// Permission names a single capability such as "vehicles:write". Permission
// comparison is exact and case-sensitive; there is no wildcard matching.
//
// The registry is built once at process start. Role inheritance is flattened
// at construction time, so lookups and checks are O(1) map operations over
// immutable state and are safe for unrestricted concurrent use.
//
// Basic usage:
//
//	reg, err := authz.NewRegistry(authz.DefaultGrants())
//	if err != nil {
//		// invalid hand-authored table, refuse to start
//	}
//
//	if reg.Can(authz.RoleMember, authz.PermVehiclesWrite) {
//		// proceed
//	}
//
// Unknown roles hold no permissions: every check against a role that is not
// in the registry evaluates to false. The registry fails closed rather than
// failing loud, matching the behavior expected at request time.
package authz
