package gate

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wrenchly/wrenchly/pkg/authz"
	"github.com/wrenchly/wrenchly/pkg/idp"
	"github.com/wrenchly/wrenchly/pkg/logger"
)

// PrincipalResolver resolves a session token to an authenticated principal.
// *idp.Client satisfies it.
type PrincipalResolver interface {
	CurrentPrincipal(ctx context.Context, sessionToken string) (*idp.Principal, error)
}

// MembershipResolver resolves a principal's role within a tenant.
// *membership.Resolver satisfies it.
type MembershipResolver interface {
	Resolve(ctx context.Context, principalID, tenantID uuid.UUID) (authz.Role, error)
}

// Gate runs the authorization check for protected entry points.
type Gate struct {
	registry    *authz.Registry
	principals  PrincipalResolver
	memberships MembershipResolver
	log         *slog.Logger
}

// Option configures a Gate.
type Option func(*Gate)

// WithLogger sets the logger used for denied decisions. The default logger
// discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(g *Gate) {
		if log != nil {
			g.log = log
		}
	}
}

// New creates a Gate over the given registry and resolvers.
func New(registry *authz.Registry, principals PrincipalResolver, memberships MembershipResolver, opts ...Option) *Gate {
	g := &Gate{
		registry:    registry,
		principals:  principals,
		memberships: memberships,
		log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check runs the full authorization sequence for one request:
// session token -> principal -> membership -> requirement.
//
// It never returns an error. Every failure along the way, including
// provider outages and context cancellation during the membership lookup,
// maps to a denial; there is no path on which a failed lookup proceeds.
func (g *Gate) Check(ctx context.Context, sessionToken string, tenantID uuid.UUID, req Requirement) Result {
	principal, err := g.principals.CurrentPrincipal(ctx, sessionToken)
	if err != nil {
		g.log.DebugContext(ctx, "gate: no principal", logger.Error(err))
		return Result{Decision: DeniedNoPrincipal, TenantID: tenantID}
	}

	// A zero tenant id denies the same way a foreign tenant does, so a
	// malformed URL reveals nothing about which tenants exist.
	if tenantID == uuid.Nil {
		return Result{Decision: DeniedNoMembership, Principal: principal}
	}

	role, err := g.memberships.Resolve(ctx, principal.ID, tenantID)
	if err != nil {
		g.log.InfoContext(ctx, "gate: membership denied",
			logger.PrincipalID(principal.ID),
			logger.TenantID(tenantID),
			logger.Error(err),
		)
		return Result{Decision: DeniedNoMembership, Principal: principal, TenantID: tenantID}
	}

	if !req.satisfiedBy(g.registry, role) {
		g.log.InfoContext(ctx, "gate: insufficient permission",
			logger.PrincipalID(principal.ID),
			logger.TenantID(tenantID),
			logger.Role(role),
		)
		return Result{Decision: DeniedInsufficientPermission, Principal: principal, TenantID: tenantID, Role: role}
	}

	return Result{Decision: Allowed, Principal: principal, TenantID: tenantID, Role: role}
}
