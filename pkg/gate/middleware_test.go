package gate_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenchly/wrenchly/pkg/authz"
	"github.com/wrenchly/wrenchly/pkg/gate"
	"github.com/wrenchly/wrenchly/pkg/idp"
	"github.com/wrenchly/wrenchly/pkg/membership"
)

// countingHandler records invocations and the request context it saw.
type countingHandler struct {
	calls   int
	lastReq *http.Request
}

func (h *countingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.calls++
	h.lastReq = r
	w.WriteHeader(http.StatusOK)
}

func pagesRouter(g *gate.Gate, req gate.Requirement, h http.Handler) chi.Router {
	r := chi.NewRouter()
	r.With(g.Pages(req)).Get("/orgs/{tenantID}/vehicles", h.ServeHTTP)
	return r
}

func apiRouter(g *gate.Gate, req gate.Requirement, h http.Handler) chi.Router {
	r := chi.NewRouter()
	r.With(g.API(req)).Post("/orgs/{tenantID}/vehicles", h.ServeHTTP)
	return r
}

func sessionCookie(r *http.Request) {
	r.AddCookie(&http.Cookie{Name: gate.DefaultSessionCookie, Value: "tok"})
}

func TestPagesMiddleware(t *testing.T) {
	t.Parallel()

	principal := &idp.Principal{ID: uuid.New()}
	tenantID := uuid.New()

	t.Run("anonymous request redirects to sign-in with return path", func(t *testing.T) {
		t.Parallel()
		g := gate.New(testRegistry(t), &stubPrincipals{err: idp.ErrSessionInvalid}, &stubMemberships{})
		h := &countingHandler{}
		router := pagesRouter(g, gate.MembershipOnly(), h)

		req := httptest.NewRequest(http.MethodGet, "/orgs/"+tenantID.String()+"/vehicles?page=2", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		loc, err := rec.Result().Location()
		require.NoError(t, err)
		assert.Equal(t, gate.SignInPath, loc.Path)
		assert.Equal(t, "/orgs/"+tenantID.String()+"/vehicles?page=2", loc.Query().Get("return_to"))
		assert.Zero(t, h.calls)
	})

	t.Run("non-member redirects to organization selection", func(t *testing.T) {
		t.Parallel()
		g := gate.New(testRegistry(t), &stubPrincipals{principal: principal}, &stubMemberships{err: membership.ErrNoAccess})
		h := &countingHandler{}
		router := pagesRouter(g, gate.MembershipOnly(), h)

		req := httptest.NewRequest(http.MethodGet, "/orgs/"+tenantID.String()+"/vehicles", nil)
		sessionCookie(req)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, gate.OrgSelectPath, rec.Header().Get("Location"))
		assert.Zero(t, h.calls)
	})

	t.Run("insufficient permission redirects to forbidden", func(t *testing.T) {
		t.Parallel()
		g := gate.New(testRegistry(t), &stubPrincipals{principal: principal}, &stubMemberships{role: authz.RoleClient})
		h := &countingHandler{}
		router := pagesRouter(g, gate.Permission(authz.PermVehiclesWrite), h)

		req := httptest.NewRequest(http.MethodGet, "/orgs/"+tenantID.String()+"/vehicles", nil)
		sessionCookie(req)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, gate.ForbiddenPath, rec.Header().Get("Location"))
		assert.Zero(t, h.calls)
	})

	t.Run("allowed request runs the handler exactly once with context set", func(t *testing.T) {
		t.Parallel()
		g := gate.New(testRegistry(t), &stubPrincipals{principal: principal}, &stubMemberships{role: authz.RoleAdmin})
		h := &countingHandler{}
		router := pagesRouter(g, gate.Permission(authz.PermVehiclesRead), h)

		req := httptest.NewRequest(http.MethodGet, "/orgs/"+tenantID.String()+"/vehicles", nil)
		sessionCookie(req)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 1, h.calls)

		ctx := h.lastReq.Context()
		gotPrincipal, ok := gate.PrincipalFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, principal.ID, gotPrincipal.ID)

		gotTenant, ok := gate.TenantIDFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, tenantID, gotTenant)

		gotRole, ok := authz.RoleFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, authz.RoleAdmin, gotRole)
	})

	t.Run("malformed tenant id reads as no membership", func(t *testing.T) {
		t.Parallel()
		memberships := &stubMemberships{role: authz.RoleAdmin}
		g := gate.New(testRegistry(t), &stubPrincipals{principal: principal}, memberships)
		h := &countingHandler{}
		router := pagesRouter(g, gate.MembershipOnly(), h)

		req := httptest.NewRequest(http.MethodGet, "/orgs/not-a-uuid/vehicles", nil)
		sessionCookie(req)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, gate.OrgSelectPath, rec.Header().Get("Location"))
		assert.Zero(t, memberships.calls)
	})
}

func TestAPIMiddleware(t *testing.T) {
	t.Parallel()

	principal := &idp.Principal{ID: uuid.New()}
	tenantID := uuid.New()

	rejectionCode := func(t *testing.T, rec *httptest.ResponseRecorder) string {
		t.Helper()
		var body struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return body.Error.Code
	}

	t.Run("missing session is 401", func(t *testing.T) {
		t.Parallel()
		g := gate.New(testRegistry(t), &stubPrincipals{err: idp.ErrSessionInvalid}, &stubMemberships{})
		h := &countingHandler{}
		router := apiRouter(g, gate.Permission(authz.PermVehiclesWrite), h)

		req := httptest.NewRequest(http.MethodPost, "/orgs/"+tenantID.String()+"/vehicles", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "unauthenticated", rejectionCode(t, rec))
		assert.Zero(t, h.calls)
	})

	t.Run("non-member is 403 without leaking tenant existence", func(t *testing.T) {
		t.Parallel()
		g := gate.New(testRegistry(t), &stubPrincipals{principal: principal}, &stubMemberships{err: membership.ErrNoAccess})
		h := &countingHandler{}
		router := apiRouter(g, gate.Permission(authz.PermVehiclesWrite), h)

		req := httptest.NewRequest(http.MethodPost, "/orgs/"+tenantID.String()+"/vehicles", nil)
		req.Header.Set("Authorization", "Bearer tok")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "no_membership", rejectionCode(t, rec))
		assert.NotContains(t, rec.Body.String(), tenantID.String())
		assert.Zero(t, h.calls)
	})

	t.Run("insufficient permission is 403 and the handler never runs", func(t *testing.T) {
		t.Parallel()
		g := gate.New(testRegistry(t), &stubPrincipals{principal: principal}, &stubMemberships{role: authz.RoleClient})
		h := &countingHandler{}
		router := apiRouter(g, gate.Permission(authz.PermVehiclesWrite), h)

		req := httptest.NewRequest(http.MethodPost, "/orgs/"+tenantID.String()+"/vehicles", nil)
		req.Header.Set("Authorization", "Bearer tok")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "insufficient_permission", rejectionCode(t, rec))
		assert.Zero(t, h.calls, "denied request must not reach the handler")
	})

	t.Run("bearer token is accepted without a cookie", func(t *testing.T) {
		t.Parallel()
		g := gate.New(testRegistry(t), &stubPrincipals{principal: principal}, &stubMemberships{role: authz.RoleMember})
		h := &countingHandler{}
		router := apiRouter(g, gate.Permission(authz.PermVehiclesWrite), h)

		req := httptest.NewRequest(http.MethodPost, "/orgs/"+tenantID.String()+"/vehicles", nil)
		req.Header.Set("Authorization", "Bearer tok")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, h.calls)
	})
}
