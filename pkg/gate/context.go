package gate

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wrenchly/wrenchly/pkg/idp"
	"github.com/wrenchly/wrenchly/pkg/logger"
)

type principalCtxKey struct{}
type tenantCtxKey struct{}

// WithPrincipal stores the authenticated principal in the context.
func WithPrincipal(ctx context.Context, p *idp.Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, p)
}

// PrincipalFromContext retrieves the principal placed by the gate middleware.
func PrincipalFromContext(ctx context.Context) (*idp.Principal, bool) {
	p, ok := ctx.Value(principalCtxKey{}).(*idp.Principal)
	return p, ok && p != nil
}

// WithTenantID stores the authorized tenant id in the context.
func WithTenantID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, tenantCtxKey{}, id)
}

// TenantIDFromContext retrieves the tenant id the request was authorized
// against. Returns false if the request did not pass the gate.
func TenantIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(tenantCtxKey{}).(uuid.UUID)
	return id, ok
}

// LoggerExtractors returns logger context extractors for the principal and
// tenant the gate resolved, for wiring into the logger factory.
func LoggerExtractors() []logger.ContextExtractor {
	return []logger.ContextExtractor{
		func(ctx context.Context) (slog.Attr, bool) {
			if p, ok := PrincipalFromContext(ctx); ok {
				return slog.String("principal_id", p.ID.String()), true
			}
			return slog.Attr{}, false
		},
		func(ctx context.Context) (slog.Attr, bool) {
			if id, ok := TenantIDFromContext(ctx); ok {
				return slog.String("tenant_id", id.String()), true
			}
			return slog.Attr{}, false
		},
	}
}
