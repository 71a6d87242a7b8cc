package appointment

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

// Router mounts the appointment API under a path carrying {tenantID}.
func Router(svc *Service, g *gate.Gate) chi.Router {
	h := &handlers{svc: svc}
	r := chi.NewRouter()

	r.With(g.API(gate.Permission(authz.PermAppointmentsRead))).Get("/", h.list)
	r.With(g.API(gate.Permission(authz.PermAppointmentsRead))).Get("/{appointmentID}", h.get)
	r.With(g.API(gate.Permission(authz.PermAppointmentsWrite))).Post("/", h.book)
	r.With(g.API(gate.Permission(authz.PermAppointmentsWrite))).Post("/{appointmentID}/cancel", h.cancel)

	return r
}

type handlers struct {
	svc *Service
}

func (h *handlers) list(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := gate.TenantIDFromContext(r.Context())

	appts, err := h.svc.List(r.Context(), tenantID)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, appts)
}

func (h *handlers) get(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := gate.TenantIDFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "appointmentID"))
	if err != nil {
		response.Error(w, response.ErrNotFound)
		return
	}

	a, err := h.svc.Get(r.Context(), tenantID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, a)
}

func (h *handlers) book(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := gate.TenantIDFromContext(r.Context())
	principal, _ := gate.PrincipalFromContext(r.Context())

	var in BookInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, response.ErrBadRequest)
		return
	}

	a, err := h.svc.Book(r.Context(), tenantID, principal.ID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, a)
}

func (h *handlers) cancel(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := gate.TenantIDFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "appointmentID"))
	if err != nil {
		response.Error(w, response.ErrNotFound)
		return
	}

	a, err := h.svc.Cancel(r.Context(), tenantID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, a)
}

// writeError maps domain errors onto client-safe HTTP errors.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrAppointmentNotFound):
		response.Error(w, response.ErrNotFound)
	case errors.Is(err, ErrInvalidInput):
		response.Error(w, response.ErrUnprocessableEntity)
	case errors.Is(err, ErrNotCancellable):
		response.Error(w, response.ErrConflict)
	default:
		response.Error(w, err)
	}
}
