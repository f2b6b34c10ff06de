package accounts

import (
	"github.com/go-chi/chi/v5"

	"github.com/johnwards/foodorder/internal/auth"
)

// RegisterRoutes adds the sign-up, sign-in, and current-user endpoints.
func RegisterRoutes(r chi.Router, svc *auth.Service) {
	h := &Handler{auth: svc}

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/sign-up", h.SignUp)
		r.Post("/sign-in", h.SignIn)
		r.Get("/me", h.Me)
	})
}
