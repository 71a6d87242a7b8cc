package invoice

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wrenchly/wrenchly/pkg/authz"
	"github.com/wrenchly/wrenchly/pkg/gate"
	"github.com/wrenchly/wrenchly/pkg/response"
)

// Router mounts the invoice API under a path carrying {tenantID}.
// Voiding demands both the write permission and the admin permission.
func Router(svc *Service, g *gate.Gate) chi.Router {
	h := &handlers{svc: svc}
	r := chi.NewRouter()

	r.With(g.API(gate.Permission(authz.PermInvoicesRead))).Get("/", h.list)
	r.With(g.API(gate.Permission(authz.PermInvoicesRead))).Get("/{invoiceID}", h.get)
	r.With(g.API(gate.Permission(authz.PermInvoicesWrite))).Post("/", h.issue)
	r.With(g.API(gate.AllOf(authz.PermInvoicesWrite, authz.PermAdmin))).Post("/{invoiceID}/void", h.void)

	return r
}

type handlers struct {
	svc *Service
}

func (h *handlers) list(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := gate.TenantIDFromContext(r.Context())

	invoices, err := h.svc.List(r.Context(), tenantID)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, invoices)
}

func (h *handlers) get(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := gate.TenantIDFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "invoiceID"))
	if err != nil {
		response.Error(w, response.ErrNotFound)
		return
	}

	inv, err := h.svc.Get(r.Context(), tenantID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, inv)
}

func (h *handlers) issue(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := gate.TenantIDFromContext(r.Context())

	var in IssueInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, response.ErrBadRequest)
		return
	}

	inv, err := h.svc.Issue(r.Context(), tenantID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, inv)
}

func (h *handlers) void(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := gate.TenantIDFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "invoiceID"))
	if err != nil {
		response.Error(w, response.ErrNotFound)
		return
	}

	inv, err := h.svc.Void(r.Context(), tenantID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, inv)
}

// writeError maps domain errors onto client-safe HTTP errors.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvoiceNotFound):
		response.Error(w, response.ErrNotFound)
	case errors.Is(err, ErrInvalidInput):
		response.Error(w, response.ErrUnprocessableEntity)
	case errors.Is(err, ErrNotVoidable), errors.Is(err, ErrDuplicateNumber):
		response.Error(w, response.ErrConflict)
	default:
		response.Error(w, err)
	}
}
