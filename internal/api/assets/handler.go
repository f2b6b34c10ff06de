package assets

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/johnwards/foodorder/internal/api"
	"github.com/johnwards/foodorder/internal/storage"
)

// Handler serves stored objects.
type Handler struct {
	bucket *storage.SQLiteBucket
}

// Get handles GET /storage/v1/object/public/{bucket}/{key}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	key := chi.URLParam(r, "*")

	if chi.URLParam(r, "bucket") != h.bucket.Name() || key == "" {
		api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Object not found", corrID))
		return
	}

	obj, err := h.bucket.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, api.NewNotFoundError("Object not found", corrID))
			return
		}
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(err.Error(), corrID))
		return
	}

	w.Header().Set("Content-Type", obj.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if t, err := time.Parse("2006-01-02T15:04:05.000Z", obj.UpdatedAt); err == nil {
		w.Header().Set("Last-Modified", t.UTC().Format(http.TimeFormat))
	}
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(obj.Data)
	}
}
