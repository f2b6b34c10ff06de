package assets

import (
	"github.com/go-chi/chi/v5"

	"github.com/johnwards/foodorder/internal/storage"
)

// RegisterRoutes serves the objects of bucket at their public URLs.
func RegisterRoutes(r chi.Router, bucket *storage.SQLiteBucket) {
	h := &Handler{bucket: bucket}

	r.Get(storage.PublicPathPrefix+"{bucket}/*", h.Get)
	r.Head(storage.PublicPathPrefix+"{bucket}/*", h.Get)
}
