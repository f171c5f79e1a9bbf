package gallery

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arborhaus/arbor-backend/internal/apperr"
	"github.com/arborhaus/arbor-backend/internal/modules/auth"
)

// maxUploadBytes caps gallery image uploads at 10 MiB.
const maxUploadBytes = 10 << 20

type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux, requireAuth func(http.Handler) http.Handler) {
	r.Route("/api/v1/gallery", func(r chi.Router) {
		r.Get("/posts", h.listPosts)
		r.Get("/posts/{id}", h.getPost)
		r.Get("/users/{userID}/posts", h.listUserPosts)

		// the feed applies the viewer's block list, so it needs an identity
		r.With(requireAuth).Get("/feed", h.feed)
		r.With(requireAuth).Post("/posts", h.createPost)
		r.With(requireAuth).Delete("/posts/{id}", h.deletePost)
	})
}

func (h *Handler) listPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.Feed(r.Context(), "")
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	respond(w, http.StatusOK, posts)
}

func (h *Handler) feed(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.Feed(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	respond(w, http.StatusOK, posts)
}

func (h *Handler) getPost(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) listUserPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListForUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	respond(w, http.StatusOK, posts)
}

func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		apperr.Respond(w, apperr.Validation(apperr.Field("body", "expected multipart form with an image file")))
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		apperr.Respond(w, apperr.Validation(apperr.Field("image", "image file is required")))
		return
	}
	defer file.Close()

	p, err := h.service.CreatePost(r.Context(), auth.UserID(r.Context()),
		r.FormValue("caption"), header.Filename, file)
	if err != nil {
		apperr.Respond(w, err)
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
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
