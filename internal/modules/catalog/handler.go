package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/arborhaus/arbor-backend/internal/apperr"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux, requireAuth func(http.Handler) http.Handler) {
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/items", h.listItems)
		r.Get("/items/{id}", h.getItem)
		r.With(requireAuth).Post("/items", h.createItem)
		r.With(requireAuth).Put("/items/{id}", h.updateItem)
		r.With(requireAuth).Delete("/items/{id}", h.archiveItem)
	})
}

// filterFromQuery builds a Filter from the listing query string. List
// parameters (colors, styles, rooms) are comma-separated.
func filterFromQuery(r *http.Request) (Filter, error) {
	q := r.URL.Query()
	f := Filter{
		Name:            q.Get("name"),
		ObjectID:        q.Get("object_id"),
		ModelID:         q.Get("model_id"),
		CompanyID:       q.Get("company_id"),
		CompanyName:     q.Get("company_name"),
		IncludeArchived: q.Get("active") == "false",
		Colors:          splitList(q.Get("colors")),
		Styles:          splitList(q.Get("styles")),
		Rooms:           splitList(q.Get("rooms")),
	}
	if p := q.Get("price"); p != "" {
		price, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return f, apperr.Validation(apperr.Field("price", "must be a number"))
		}
		f.Price = &price
	}
	return f, nil
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	items, err := h.service.List(r.Context(), f)
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	respond(w, http.StatusOK, items)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	respond(w, http.StatusOK, item)
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.Respond(w, apperr.Validation(apperr.Field("body", "malformed JSON")))
		return
	}
	item, err := h.service.Create(r.Context(), req)
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	respond(w, http.StatusCreated, item)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.Respond(w, apperr.Validation(apperr.Field("body", "malformed JSON")))
		return
	}
	item, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	respond(w, http.StatusOK, item)
}

func (h *Handler) archiveItem(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Archive(r.Context(), chi.URLParam(r, "id")); err != nil {
		apperr.Respond(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
