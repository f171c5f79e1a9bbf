package cart

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arborhaus/arbor-backend/internal/apperr"
	"github.com/arborhaus/arbor-backend/internal/modules/auth"
)

// Handler exposes the authenticated cart endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux, requireAuth func(http.Handler) http.Handler) {
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", h.getCart)
		r.Post("/items", h.addVariant)
		r.Delete("/items/{colorID}", h.removeVariant)
	})
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.Get(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) addVariant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ColorVariantID string `json:"color_variant_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.Respond(w, apperr.Validation(apperr.Field("body", "malformed JSON")))
		return
	}
	if req.ColorVariantID == "" {
		apperr.Respond(w, apperr.Validation(apperr.Field("color_variant_id", "id is required")))
		return
	}
	c, err := h.service.AddVariant(r.Context(), auth.UserID(r.Context()), req.ColorVariantID)
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) removeVariant(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.RemoveVariant(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "colorID"))
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	respond(w, http.StatusOK, c)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
