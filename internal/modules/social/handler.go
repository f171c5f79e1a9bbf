package social

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
	r.Route("/api/v1/social", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/blocks", h.listBlocks)
		r.Post("/blocks", h.block)
		r.Delete("/blocks/{userID}", h.unblock)
		r.Post("/likes", h.like)
		r.Delete("/likes/{postID}", h.unlike)
	})
	// who liked a post is public, like the gallery itself
	r.Get("/api/v1/gallery/posts/{postID}/likes", h.listLikes)
}

func (h *Handler) listBlocks(w http.ResponseWriter, r *http.Request) {
	blocks, err := h.service.ListBlocks(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	respond(w, http.StatusOK, blocks)
}

func (h *Handler) block(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.Respond(w, apperr.Validation(apperr.Field("body", "invalid JSON body")))
		return
	}
	b, err := h.service.Block(r.Context(), auth.UserID(r.Context()), req.UserID)
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	respond(w, http.StatusCreated, b)
}

func (h *Handler) unblock(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Unblock(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "userID")); err != nil {
		apperr.Respond(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) like(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PostID string `json:"post_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.Respond(w, apperr.Validation(apperr.Field("body", "invalid JSON body")))
		return
	}
	l, err := h.service.Like(r.Context(), auth.UserID(r.Context()), req.PostID)
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	respond(w, http.StatusCreated, l)
}

func (h *Handler) unlike(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Unlike(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "postID")); err != nil {
		apperr.Respond(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listLikes(w http.ResponseWriter, r *http.Request) {
	likes, err := h.service.ListLikesForPost(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	respond(w, http.StatusOK, likes)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
