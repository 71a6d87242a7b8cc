package authz

import (
	"context"
	"log/slog"
)

// roleCtxKey is a private context key type to avoid collisions.
type roleCtxKey struct{}

// WithRole stores the principal's resolved tenant role in the context.
// The gate sets this after a membership lookup succeeds; handlers further
// down the chain read it instead of resolving membership again.
func WithRole(ctx context.Context, role Role) context.Context {
	return context.WithValue(ctx, roleCtxKey{}, role)
}

// RoleFromContext retrieves the role placed in the context by the gate.
// Returns false if no role has been resolved for this request.
func RoleFromContext(ctx context.Context) (Role, bool) {
	role, ok := ctx.Value(roleCtxKey{}).(Role)
	return role, ok
}

// RoleLoggerExtractor returns a logger context extractor that records the
// resolved role under the key "role".
func RoleLoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if role, ok := RoleFromContext(ctx); ok {
			return slog.String("role", role.String()), true
		}
		return slog.Attr{}, false
	}
}
