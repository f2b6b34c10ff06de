package menus

import (
	"net/http"

	"github.com/johnwards/foodorder/internal/api"
	"github.com/johnwards/foodorder/internal/catalog"
)

// Handler handles catalog HTTP requests.
type Handler struct {
	catalog *catalog.Service
}

// List handles GET /api/menus?category=<id>&query=<text>.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	menus, err := h.catalog.GetMenu(r.Context(), catalog.GetMenuParams{
		Category: q.Get("category"),
		Query:    q.Get("query"),
	})
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(err.Error(), api.CorrelationID(r.Context())))
		return
	}

	api.WriteJSON(w, http.StatusOK, menus)
}

// Categories handles GET /api/categories.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.GetCategories(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(err.Error(), api.CorrelationID(r.Context())))
		return
	}

	api.WriteJSON(w, http.StatusOK, categories)
}
