package accounts

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/johnwards/foodorder/internal/api"
	"github.com/johnwards/foodorder/internal/auth"
)

// Handler handles account HTTP requests.
type Handler struct {
	auth *auth.Service
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp handles POST /api/auth/sign-up.
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	var in auth.SignUpInput
	if err := api.DecodeJSON(r, &in); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(err.Error(), corrID, nil))
		return
	}

	p, err := h.auth.SignUp(r.Context(), in)
	if err != nil {
		var ve *auth.ValidationError
		switch {
		case errors.As(err, &ve):
			api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid sign-up request", corrID,
				[]api.ErrorDetail{{Message: ve.Message, In: ve.Field}}))
		case errors.Is(err, auth.ErrEmailTaken):
			api.WriteError(w, http.StatusConflict, api.NewConflictError(err.Error(), corrID))
		default:
			slog.Error("sign up failed", "error", err, "correlation_id", corrID)
			api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(err.Error(), corrID))
		}
		return
	}

	api.WriteJSON(w, http.StatusCreated, p)
}

// SignIn handles POST /api/auth/sign-in.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	var in signInRequest
	if err := api.DecodeJSON(r, &in); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(err.Error(), corrID, nil))
		return
	}

	tok, err := h.auth.SignIn(r.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			api.WriteError(w, http.StatusUnauthorized, api.NewUnauthorizedError(err.Error(), corrID))
			return
		}
		slog.Error("sign in failed", "error", err, "correlation_id", corrID)
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(err.Error(), corrID))
		return
	}

	api.WriteJSON(w, http.StatusOK, tok)
}

// Me handles GET /api/auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	p, err := h.auth.User(r.Context(), api.BearerToken(r))
	if err != nil {
		if errors.Is(err, auth.ErrInvalidSession) {
			api.WriteError(w, http.StatusUnauthorized, api.NewUnauthorizedError("No active session", corrID))
			return
		}
		slog.Error("load current user failed", "error", err, "correlation_id", corrID)
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(err.Error(), corrID))
		return
	}

	api.WriteJSON(w, http.StatusOK, p)
}
