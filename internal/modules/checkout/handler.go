package checkout

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arborhaus/arbor-backend/internal/apperr"
	"github.com/arborhaus/arbor-backend/internal/modules/auth"
)

type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux, requireAuth func(http.Handler) http.Handler) {
	r.With(requireAuth).Post("/api/v1/checkout", h.checkout)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.Respond(w, apperr.Validation(apperr.Field("body", "invalid JSON body")))
		return
	}

	res, err := h.service.Checkout(r.Context(), auth.UserID(r.Context()), req)
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	respond(w, http.StatusCreated, res)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
