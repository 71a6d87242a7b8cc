package authz_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wrenchly/wrenchly/pkg/authz"
)

func TestRegistry_ConcurrentReads(t *testing.T) {
	t.Parallel()
	reg := newTestRegistry(t)

	const goroutines = 32
	const iterations = 500

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		role := []authz.Role{authz.RoleClient, authz.RoleMember, authz.RoleAdmin}[i%3]
		go func(role authz.Role) {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				reg.Can(role, authz.PermVehiclesRead)
				reg.CanAny(role, authz.PermVehiclesWrite, authz.PermAdmin)
				reg.CanAll(role, authz.PermVehiclesRead, authz.PermInvoicesRead)
				reg.PermissionsFor(role)
			}
		}(role)
	}
	wg.Wait()

	// Lookups after the storm behave exactly as before it.
	assert.True(t, reg.Can(authz.RoleAdmin, authz.PermAdmin))
	assert.False(t, reg.Can(authz.RoleClient, authz.PermVehiclesWrite))
}

func TestRegistry_PermissionsForIsolation(t *testing.T) {
	t.Parallel()
	reg := newTestRegistry(t)

	perms := reg.PermissionsFor(authz.RoleClient)
	for i := range perms {
		perms[i] = authz.Permission("mutated")
	}
	assert.NotContains(t, reg.PermissionsFor(authz.RoleClient), authz.Permission("mutated"))
}
