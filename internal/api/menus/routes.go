package menus

import (
	"github.com/go-chi/chi/v5"

	"github.com/johnwards/foodorder/internal/catalog"
)

// RegisterRoutes adds the catalog read endpoints to the router.
func RegisterRoutes(r chi.Router, svc *catalog.Service) {
	h := &Handler{catalog: svc}

	r.Get("/api/menus", h.List)
	r.Get("/api/categories", h.Categories)
}
