package gate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wrenchly/wrenchly/pkg/authz"
)

// DefaultSessionCookie is the cookie carrying the provider session token
// for browser page loads.
const DefaultSessionCookie = "wrenchly_session"

// Redirect targets for denied page loads.
const (
	SignInPath    = "/sign-in"
	OrgSelectPath = "/orgs"
	ForbiddenPath = "/forbidden"
)

// MiddlewareOption configures the gate middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	cookieName  string
	tenantParam string
}

// WithSessionCookie overrides the session cookie name read by Pages.
func WithSessionCookie(name string) MiddlewareOption {
	return func(c *middlewareConfig) {
		if name != "" {
			c.cookieName = name
		}
	}
}

// WithTenantParam overrides the chi URL parameter holding the tenant id.
// Defaults to "tenantID".
func WithTenantParam(name string) MiddlewareOption {
	return func(c *middlewareConfig) {
		if name != "" {
			c.tenantParam = name
		}
	}
}

func newMiddlewareConfig(opts []MiddlewareOption) *middlewareConfig {
	cfg := &middlewareConfig{
		cookieName:  DefaultSessionCookie,
		tenantParam: "tenantID",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Pages guards page and layout entry points. Denials become 303 redirects:
// an anonymous request goes to sign-in carrying the originally requested
// path in a return_to parameter, a non-member goes to organization
// selection, and a member lacking the required permission goes to the
// forbidden page. The wrapped handler runs only on Allowed.
func (g *Gate) Pages(req Requirement, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := newMiddlewareConfig(opts)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := cookieToken(r, cfg.cookieName)
			tenantID := tenantIDFromRequest(r, cfg.tenantParam)

			res := g.Check(r.Context(), token, tenantID, req)
			switch res.Decision {
			case Allowed:
				next.ServeHTTP(w, r.WithContext(resultContext(r, res)))
			case DeniedNoPrincipal:
				http.Redirect(w, r, signInURL(r), http.StatusSeeOther)
			case DeniedNoMembership:
				http.Redirect(w, r, OrgSelectPath, http.StatusSeeOther)
			default:
				http.Redirect(w, r, ForbiddenPath, http.StatusSeeOther)
			}
		})
	}
}

// API guards action and API entry points. Denials become structured JSON
// rejections: 401 for a missing session, 403 otherwise. The body carries
// only the decision kind, never registry internals or tenant existence.
func (g *Gate) API(req Requirement, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := newMiddlewareConfig(opts)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				token = cookieToken(r, cfg.cookieName)
			}
			tenantID := tenantIDFromRequest(r, cfg.tenantParam)

			res := g.Check(r.Context(), token, tenantID, req)
			if res.Allowed() {
				next.ServeHTTP(w, r.WithContext(resultContext(r, res)))
				return
			}

			status := http.StatusForbidden
			if res.Decision == DeniedNoPrincipal {
				status = http.StatusUnauthorized
			}
			writeRejection(w, status, res.Decision)
		})
	}
}

// resultContext stashes the allowed result's facts into the request context
// for downstream handlers.
func resultContext(r *http.Request, res Result) context.Context {
	ctx := WithPrincipal(r.Context(), res.Principal)
	ctx = WithTenantID(ctx, res.TenantID)
	return authz.WithRole(ctx, res.Role)
}

// signInURL builds the sign-in redirect preserving the requested path.
func signInURL(r *http.Request) string {
	returnTo := r.URL.Path
	if r.URL.RawQuery != "" {
		returnTo += "?" + r.URL.RawQuery
	}
	return SignInPath + "?return_to=" + url.QueryEscape(returnTo)
}

// cookieToken reads the session token cookie, empty if absent.
func cookieToken(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

// bearerToken reads an Authorization: Bearer token, empty if absent.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return h[len(prefix):]
	}
	return ""
}

// tenantIDFromRequest parses the tenant id URL parameter. A missing or
// malformed id yields uuid.Nil, which the gate denies as no-membership.
func tenantIDFromRequest(r *http.Request, param string) uuid.UUID {
	raw := chi.URLParam(r, param)
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

type rejectionBody struct {
	Error rejectionDetail `json:"error"`
}

type rejectionDetail struct {
	Code string `json:"code"`
}

func writeRejection(w http.ResponseWriter, status int, d Decision) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(rejectionBody{Error: rejectionDetail{Code: d.String()}})
}
