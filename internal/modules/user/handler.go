package user

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arborhaus/arbor-backend/internal/apperr"
	"github.com/arborhaus/arbor-backend/internal/modules/auth"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the user endpoints. requireAuth guards the
// account-deletion route.
func (h *Handler) RegisterRoutes(router *chi.Mux, requireAuth func(http.Handler) http.Handler) {
	router.Post("/api/v1/users/register", h.registerUser)
	router.Get("/api/v1/users/{id}", h.getUser)
	router.With(requireAuth).Delete("/api/v1/users/me", h.deleteMe)
}

func (h *Handler) registerUser(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.Respond(w, apperr.Validation(apperr.Field("body", "malformed JSON")))
		return
	}

	user, err := h.service.RegisterUser(r.Context(), req)
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

func (h *Handler) deleteMe(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteUser(r.Context(), auth.UserID(r.Context())); err != nil {
		apperr.Respond(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
