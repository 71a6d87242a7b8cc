package gate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenchly/wrenchly/pkg/authz"
	"github.com/wrenchly/wrenchly/pkg/gate"
	"github.com/wrenchly/wrenchly/pkg/idp"
	"github.com/wrenchly/wrenchly/pkg/membership"
)

type stubPrincipals struct {
	principal *idp.Principal
	err       error
	calls     int
}

func (s *stubPrincipals) CurrentPrincipal(_ context.Context, _ string) (*idp.Principal, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.principal, nil
}

type stubMemberships struct {
	role  authz.Role
	err   error
	calls int
}

func (s *stubMemberships) Resolve(_ context.Context, _, _ uuid.UUID) (authz.Role, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.role, nil
}

func testRegistry(t *testing.T) *authz.Registry {
	t.Helper()
	reg, err := authz.NewRegistry(authz.DefaultGrants())
	require.NoError(t, err)
	return reg
}

func TestGate_Check(t *testing.T) {
	t.Parallel()

	principal := &idp.Principal{ID: uuid.New(), Email: "mech@example.com"}
	tenantID := uuid.New()

	t.Run("anonymous caller", func(t *testing.T) {
		t.Parallel()
		principals := &stubPrincipals{err: idp.ErrSessionInvalid}
		memberships := &stubMemberships{role: authz.RoleAdmin}
		g := gate.New(testRegistry(t), principals, memberships)

		res := g.Check(context.Background(), "", tenantID, gate.Permission(authz.PermVehiclesRead))
		assert.Equal(t, gate.DeniedNoPrincipal, res.Decision)
		assert.False(t, res.Allowed())
		assert.Nil(t, res.Principal)
		assert.Zero(t, memberships.calls, "membership must not be consulted without a principal")
	})

	t.Run("authenticated non-member", func(t *testing.T) {
		t.Parallel()
		principals := &stubPrincipals{principal: principal}
		memberships := &stubMemberships{err: membership.ErrNoAccess}
		g := gate.New(testRegistry(t), principals, memberships)

		res := g.Check(context.Background(), "tok", tenantID, gate.Permission(authz.PermVehiclesRead))
		assert.Equal(t, gate.DeniedNoMembership, res.Decision)
		assert.Equal(t, principal, res.Principal)
	})

	t.Run("member without the required permission", func(t *testing.T) {
		t.Parallel()
		principals := &stubPrincipals{principal: principal}
		memberships := &stubMemberships{role: authz.RoleClient}
		g := gate.New(testRegistry(t), principals, memberships)

		res := g.Check(context.Background(), "tok", tenantID, gate.Permission(authz.PermVehiclesWrite))
		assert.Equal(t, gate.DeniedInsufficientPermission, res.Decision)
		assert.Equal(t, authz.RoleClient, res.Role)
	})

	t.Run("member with the required permission", func(t *testing.T) {
		t.Parallel()
		principals := &stubPrincipals{principal: principal}
		memberships := &stubMemberships{role: authz.RoleAdmin}
		g := gate.New(testRegistry(t), principals, memberships)

		res := g.Check(context.Background(), "tok", tenantID, gate.Permission(authz.PermVehiclesWrite))
		assert.Equal(t, gate.Allowed, res.Decision)
		assert.True(t, res.Allowed())
		assert.Equal(t, authz.RoleAdmin, res.Role)
		assert.Equal(t, tenantID, res.TenantID)
		assert.Equal(t, 1, principals.calls)
		assert.Equal(t, 1, memberships.calls)
	})

	t.Run("provider outage denies, never allows", func(t *testing.T) {
		t.Parallel()
		principals := &stubPrincipals{principal: principal}
		memberships := &stubMemberships{err: errors.Join(membership.ErrNoAccess, idp.ErrProviderUnavailable)}
		g := gate.New(testRegistry(t), principals, memberships)

		res := g.Check(context.Background(), "tok", tenantID, gate.MembershipOnly())
		assert.Equal(t, gate.DeniedNoMembership, res.Decision)
	})

	t.Run("zero tenant id denies like a foreign tenant", func(t *testing.T) {
		t.Parallel()
		principals := &stubPrincipals{principal: principal}
		memberships := &stubMemberships{role: authz.RoleAdmin}
		g := gate.New(testRegistry(t), principals, memberships)

		res := g.Check(context.Background(), "tok", uuid.Nil, gate.MembershipOnly())
		assert.Equal(t, gate.DeniedNoMembership, res.Decision)
		assert.Zero(t, memberships.calls)
	})

	t.Run("repeated checks decide identically", func(t *testing.T) {
		t.Parallel()
		principals := &stubPrincipals{principal: principal}
		memberships := &stubMemberships{role: authz.RoleMember}
		g := gate.New(testRegistry(t), principals, memberships)

		req := gate.Permission(authz.PermInvoicesWrite)
		first := g.Check(context.Background(), "tok", tenantID, req)
		second := g.Check(context.Background(), "tok", tenantID, req)
		assert.Equal(t, first, second)
		assert.Equal(t, gate.DeniedInsufficientPermission, first.Decision)
	})
}

func TestGate_Requirements(t *testing.T) {
	t.Parallel()

	principal := &idp.Principal{ID: uuid.New()}
	tenantID := uuid.New()

	newGate := func(t *testing.T, role authz.Role) *gate.Gate {
		t.Helper()
		return gate.New(testRegistry(t), &stubPrincipals{principal: principal}, &stubMemberships{role: role})
	}

	tests := []struct {
		name string
		role authz.Role
		req  gate.Requirement
		want gate.Decision
	}{
		{
			name: "membership only passes any member",
			role: authz.RoleClient,
			req:  gate.MembershipOnly(),
			want: gate.Allowed,
		},
		{
			name: "any-of with one held",
			role: authz.RoleClient,
			req:  gate.AnyOf(authz.PermVehiclesWrite, authz.PermVehiclesRead),
			want: gate.Allowed,
		},
		{
			name: "any-of with empty list never passes",
			role: authz.RoleAdmin,
			req:  gate.AnyOf(),
			want: gate.DeniedInsufficientPermission,
		},
		{
			name: "all-of with one missing",
			role: authz.RoleMember,
			req:  gate.AllOf(authz.PermVehiclesWrite, authz.PermInvoicesWrite),
			want: gate.DeniedInsufficientPermission,
		},
		{
			name: "all-of fully held",
			role: authz.RoleAdmin,
			req:  gate.AllOf(authz.PermInvoicesWrite, authz.PermAdmin),
			want: gate.Allowed,
		},
		{
			name: "min role met",
			role: authz.RoleAdmin,
			req:  gate.MinRole(authz.RoleMember),
			want: gate.Allowed,
		},
		{
			name: "min role not met",
			role: authz.RoleClient,
			req:  gate.MinRole(authz.RoleMember),
			want: gate.DeniedInsufficientPermission,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := newGate(t, tt.role).Check(context.Background(), "tok", tenantID, tt.req)
			assert.Equal(t, tt.want, res.Decision)
		})
	}
}

func TestDecision_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "allowed", gate.Allowed.String())
	assert.Equal(t, "unauthenticated", gate.DeniedNoPrincipal.String())
	assert.Equal(t, "no_membership", gate.DeniedNoMembership.String())
	assert.Equal(t, "insufficient_permission", gate.DeniedInsufficientPermission.String())
}
