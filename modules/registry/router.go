package registry

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/campuskit/campuskit/pkg/institute"
	"github.com/campuskit/campuskit/pkg/session"
)

// Router exposes the platform admin API. Mount it behind a superuser
// guard; the handlers themselves do no authentication.
func Router(svc *Service, log *slog.Logger) chi.Router {
	if log == nil {
		log = slog.Default()
	}
	h := &handlers{svc: svc, log: log}

	r := chi.NewRouter()
	r.Route("/institutes", func(r chi.Router) {
		r.Post("/", h.createInstitute)
		r.Get("/{subdomain}", h.getInstitute)
		r.Post("/{id}/suspend", h.suspendInstitute)
		r.Post("/{id}/reactivate", h.reactivateInstitute)
	})
	r.Route("/users/{id}/roles", func(r chi.Router) {
		r.Post("/", h.grantRole)
		r.Delete("/{role}", h.revokeRole)
	})
	return r
}

type handlers struct {
	svc *Service
	log *slog.Logger
}

type createInstituteRequest struct {
	Subdomain string `json:"subdomain"`
	Name      string `json:"name"`
}

type grantRoleRequest struct {
	Role string `json:"role"`
}

func (h *handlers) createInstitute(w http.ResponseWriter, r *http.Request) {
	var req createInstituteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	inst, err := h.svc.CreateInstitute(r.Context(), req.Subdomain, req.Name)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, inst)
}

func (h *handlers) getInstitute(w http.ResponseWriter, r *http.Request) {
	inst, err := h.svc.GetInstitute(r.Context(), chi.URLParam(r, "subdomain"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inst)
}

func (h *handlers) suspendInstitute(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, (*Service).Suspend)
}

func (h *handlers) reactivateInstitute(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, (*Service).Reactivate)
}

func (h *handlers) setStatus(w http.ResponseWriter, r *http.Request, op func(*Service, context.Context, uuid.UUID) error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid institute id")
		return
	}
	if err := op(h.svc, r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) grantRole(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	var req grantRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.GrantRole(r.Context(), id, session.Role(req.Role)); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) revokeRole(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if err := h.svc.RevokeRole(r.Context(), id, session.Role(chi.URLParam(r, "role"))); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalidSubdomain),
		errors.Is(err, ErrSubdomainReserved),
		errors.Is(err, ErrInvalidName),
		errors.Is(err, ErrInvalidRole):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrSubdomainTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, institute.ErrNotFound), errors.Is(err, ErrProfileNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.log.ErrorContext(r.Context(), "registry request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
