package filestore

import (
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/arborhaus/arbor-backend/internal/apperr"
)

// Handler serves stored blobs back to clients. Uploads happen through the
// modules that own the asset (gallery posts), not here.
type Handler struct{ store Store }

func NewHandler(store Store) *Handler { return &Handler{store: store} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Get("/api/v1/files/{key}", h.getFile)
}

func (h *Handler) getFile(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	rc, err := h.store.Get(key)
	if err != nil {
		if os.IsNotExist(err) {
			apperr.Respond(w, apperr.NotFound("file"))
			return
		}
		apperr.Respond(w, err)
		return
	}
	defer rc.Close()

	if ct := mime.TypeByExtension(filepath.Ext(key)); ct != "" {
		w.Header().Set("Content-Type", ct)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	io.Copy(w, rc)
}
