package api

import (
	"errors"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/storage"
)

// AssetHandler serves files from the assets directory.
type AssetHandler struct {
	store storage.Provider
}

// NewAssetHandler creates a handler over store.
func NewAssetHandler(store storage.Provider) *AssetHandler {
	return &AssetHandler{store: store}
}

// Serve returns a handler for GET {prefix}/* that serves files from the dir
// subdirectory of the assets root. Requests that escape dir are rejected.
func (h *AssetHandler) Serve(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "*")
		if name == "" {
			http.NotFound(w, r)
			return
		}
		rel := path.Join(dir, name)
		if !strings.HasPrefix(rel, dir+"/") {
			http.Error(w, "invalid path", http.StatusBadRequest)
			return
		}
		f, info, err := h.store.Open(rel)
		switch {
		case errors.Is(err, apperr.ErrInvalid):
			http.Error(w, "invalid path", http.StatusBadRequest)
			return
		case errors.Is(err, apperr.ErrNotFound):
			http.NotFound(w, r)
			return
		case err != nil:
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		defer f.Close()
		w.Header().Set("Cache-Control", "public, max-age=3600")
		http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	}
}
