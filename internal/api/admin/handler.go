package admin

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/johnwards/foodorder/internal/api"
	"github.com/johnwards/foodorder/internal/seed"
)

// Handler serves the admin API at /_admin/.
type Handler struct {
	seeder  *seed.Seeder
	dataset DatasetFunc
}

// Reset empties the catalog tables and the asset bucket.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	rep, err := h.seeder.Reset(r.Context())
	if err != nil {
		slog.Error("admin reset failed", "error", err)
		writeSeedError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, rep)
}

// Seed performs a full seed run and returns its report.
func (h *Handler) Seed(w http.ResponseWriter, r *http.Request) {
	ds, err := h.dataset()
	if err != nil {
		slog.Error("admin seed: load dataset", "error", err)
		api.WriteError(w, http.StatusInternalServerError,
			api.NewInternalError("load dataset: "+err.Error(), api.CorrelationID(r.Context())))
		return
	}

	rep, err := h.seeder.Run(r.Context(), ds)
	if err != nil {
		slog.Error("admin seed failed", "error", err)
		writeSeedError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, rep)
}

func writeSeedError(w http.ResponseWriter, r *http.Request, err error) {
	corrID := api.CorrelationID(r.Context())

	var gap *seed.ReferentialGapError
	var ingest *seed.IngestionError
	switch {
	case errors.As(err, &gap):
		api.WriteError(w, http.StatusUnprocessableEntity, api.NewValidationError(err.Error(), corrID, nil))
	case errors.As(err, &ingest):
		api.WriteError(w, http.StatusBadGateway, api.NewUpstreamError(err.Error(), corrID))
	default:
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(err.Error(), corrID))
	}
}
