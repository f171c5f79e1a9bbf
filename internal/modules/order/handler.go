package order

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arborhaus/arbor-backend/internal/apperr"
	"github.com/arborhaus/arbor-backend/internal/modules/auth"
)

// Handler exposes order history endpoints. Orders are created by the
// checkout flow, never directly over HTTP.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux, requireAuth func(http.Handler) http.Handler) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", h.listOrders)
		r.Get("/{id}", h.getOrder)
	})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListForUser(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	// an order owned by someone else is indistinguishable from a missing one
	if o.UserID != nil && o.UserID.String() != auth.UserID(r.Context()) {
		apperr.Respond(w, apperr.NotFound("order"))
		return
	}
	respond(w, http.StatusOK, o)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
