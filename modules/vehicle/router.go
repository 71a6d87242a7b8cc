package vehicle

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

// Router mounts the vehicle API. Each route declares its permission
// requirement inline; the gate runs before any handler touches the
// repository. The router expects to be mounted under a path carrying a
// {tenantID} parameter.
func Router(svc *Service, g *gate.Gate) chi.Router {
	h := &handlers{svc: svc}
	r := chi.NewRouter()

	r.With(g.API(gate.Permission(authz.PermVehiclesRead))).Get("/", h.list)
	r.With(g.API(gate.Permission(authz.PermVehiclesRead))).Get("/{vehicleID}", h.get)
	r.With(g.API(gate.Permission(authz.PermVehiclesWrite))).Post("/", h.create)
	r.With(g.API(gate.Permission(authz.PermVehiclesWrite))).Put("/{vehicleID}", h.update)

	r.With(g.API(gate.Permission(authz.PermAssessmentsRead))).Get("/{vehicleID}/assessments", h.listAssessments)
	r.With(g.API(gate.Permission(authz.PermAssessmentsWrite))).Post("/{vehicleID}/assessments", h.createAssessment)

	return r
}

type handlers struct {
	svc *Service
}

func (h *handlers) list(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := gate.TenantIDFromContext(r.Context())

	vehicles, err := h.svc.List(r.Context(), tenantID)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, vehicles)
}

func (h *handlers) get(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := gate.TenantIDFromContext(r.Context())
	vehicleID, err := uuid.Parse(chi.URLParam(r, "vehicleID"))
	if err != nil {
		response.Error(w, response.ErrNotFound)
		return
	}

	v, err := h.svc.Get(r.Context(), tenantID, vehicleID)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, v)
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := gate.TenantIDFromContext(r.Context())

	var in CreateVehicleInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, response.ErrBadRequest)
		return
	}

	v, err := h.svc.Create(r.Context(), tenantID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, v)
}

func (h *handlers) update(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := gate.TenantIDFromContext(r.Context())
	vehicleID, err := uuid.Parse(chi.URLParam(r, "vehicleID"))
	if err != nil {
		response.Error(w, response.ErrNotFound)
		return
	}

	var in CreateVehicleInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, response.ErrBadRequest)
		return
	}

	v, err := h.svc.Update(r.Context(), tenantID, vehicleID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, v)
}

func (h *handlers) listAssessments(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := gate.TenantIDFromContext(r.Context())
	vehicleID, err := uuid.Parse(chi.URLParam(r, "vehicleID"))
	if err != nil {
		response.Error(w, response.ErrNotFound)
		return
	}

	assessments, err := h.svc.ListAssessments(r.Context(), tenantID, vehicleID)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, assessments)
}

func (h *handlers) createAssessment(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := gate.TenantIDFromContext(r.Context())
	principal, _ := gate.PrincipalFromContext(r.Context())
	vehicleID, err := uuid.Parse(chi.URLParam(r, "vehicleID"))
	if err != nil {
		response.Error(w, response.ErrNotFound)
		return
	}

	var in CreateAssessmentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, response.ErrBadRequest)
		return
	}

	a, err := h.svc.CreateAssessment(r.Context(), tenantID, vehicleID, principal.ID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, a)
}

// writeError maps domain errors onto client-safe HTTP errors.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrVehicleNotFound):
		response.Error(w, response.ErrNotFound)
	case errors.Is(err, ErrInvalidInput):
		response.Error(w, response.ErrUnprocessableEntity)
	default:
		response.Error(w, err)
	}
}
