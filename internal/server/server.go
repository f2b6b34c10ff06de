// Package server assembles the HTTP API.
package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/johnwards/foodorder/internal/api"
	"github.com/johnwards/foodorder/internal/api/accounts"
	"github.com/johnwards/foodorder/internal/api/admin"
	"github.com/johnwards/foodorder/internal/api/assets"
	"github.com/johnwards/foodorder/internal/api/menus"
	"github.com/johnwards/foodorder/internal/auth"
	"github.com/johnwards/foodorder/internal/catalog"
	"github.com/johnwards/foodorder/internal/seed"
	"github.com/johnwards/foodorder/internal/storage"
	"github.com/johnwards/foodorder/internal/store"
)

// Deps are the collaborators the router dispatches to.
type Deps struct {
	Store     *store.Store
	Auth      *auth.Service
	Seeder    *seed.Seeder
	Dataset   admin.DatasetFunc
	AuthToken string
	Logger    *slog.Logger // defaults to slog.Default()

	// Assets serves uploaded images. Nil when images live in an external
	// bucket that serves its own public URLs.
	Assets *storage.SQLiteBucket
}

// New returns the root handler with all routes and middleware installed.
func New(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(api.RequestID())
	r.Use(api.Recovery(logger))
	r.Use(api.Logging(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", api.CorrelationHeader},
		ExposedHeaders: []string{api.CorrelationHeader},
		MaxAge:         300,
	}))
	r.Use(api.JSONContentType(storage.PublicPathPrefix))

	menus.RegisterRoutes(r, catalog.New(d.Store.Menus, d.Store.Categories))
	accounts.RegisterRoutes(r, d.Auth)
	if d.Assets != nil {
		assets.RegisterRoutes(r, d.Assets)
	}
	admin.RegisterRoutes(r, d.Seeder, d.Dataset, d.AuthToken)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.WriteError(w, http.StatusNotFound, api.NewNotFoundError(
			fmt.Sprintf("No route found for %s %s", r.Method, r.URL.Path),
			api.CorrelationID(r.Context()),
		))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.WriteError(w, http.StatusMethodNotAllowed, api.NewNotFoundError(
			fmt.Sprintf("Method %s not allowed for %s", r.Method, r.URL.Path),
			api.CorrelationID(r.Context()),
		))
	})

	return r
}
