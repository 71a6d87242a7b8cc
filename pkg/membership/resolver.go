package membership

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/wrenchly/wrenchly/pkg/authz"
	"github.com/wrenchly/wrenchly/pkg/idp"
)

// ErrNoAccess is returned for every lookup that does not positively confirm
// a membership with a recognized role. Callers must not distinguish "not a
// member" from "provider down": both deny.
var ErrNoAccess = errors.New("membership.no_access")

// Source is the slice of the identity provider the resolver needs.
// *idp.Client satisfies it.
type Source interface {
	Membership(ctx context.Context, principalID, tenantID uuid.UUID) (*idp.Membership, error)
}

// Resolver answers "what role does this principal hold in this tenant".
type Resolver struct {
	source Source
}

// NewResolver creates a resolver backed by the given membership source.
func NewResolver(source Source) *Resolver {
	return &Resolver{source: source}
}

// Resolve returns the principal's role in the tenant, or ErrNoAccess.
//
// The underlying cause is joined onto ErrNoAccess so it stays available for
// logging, but the decision a caller can act on is only ever "role" or
// "no access". A role string outside the closed role set also denies: a
// membership we cannot interpret grants nothing.
func (r *Resolver) Resolve(ctx context.Context, principalID, tenantID uuid.UUID) (authz.Role, error) {
	m, err := r.source.Membership(ctx, principalID, tenantID)
	if err != nil {
		return "", errors.Join(ErrNoAccess, err)
	}

	role := authz.Role(m.Role)
	if !role.Valid() {
		return "", errors.Join(ErrNoAccess, errors.New("unrecognized role "+m.Role))
	}
	return role, nil
}
