package admin

import (
	"github.com/go-chi/chi/v5"

	"github.com/johnwards/foodorder/internal/api"
	"github.com/johnwards/foodorder/internal/seed"
)

// DatasetFunc returns the dataset a seed request populates from.
type DatasetFunc func() (*seed.Dataset, error)

// RegisterRoutes registers the admin endpoints under /_admin. When authToken
// is non-empty every request must carry it as a bearer token.
func RegisterRoutes(r chi.Router, seeder *seed.Seeder, dataset DatasetFunc, authToken string) {
	h := &Handler{seeder: seeder, dataset: dataset}

	r.Route("/_admin", func(r chi.Router) {
		r.Use(api.Auth(authToken))
		r.Post("/reset", h.Reset)
		r.Post("/seed", h.Seed)
	})
}
