package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/johnwards/foodorder/internal/api"
)

func TestNewNotFoundError(t *testing.T) {
	err := api.NewNotFoundError("object not found", "abc-123")

	if err.Status != "error" {
		t.Errorf("Status = %q, want %q", err.Status, "error")
	}
	if err.Category != api.CategoryObjectNotFound {
		t.Errorf("Category = %q, want %q", err.Category, api.CategoryObjectNotFound)
	}
	if err.CorrelationID != "abc-123" {
		t.Errorf("CorrelationID = %q, want %q", err.CorrelationID, "abc-123")
	}
	if err.Message != "object not found" {
		t.Errorf("Message = %q, want %q", err.Message, "object not found")
	}
}

func TestNewValidationError(t *testing.T) {
	details := []api.ErrorDetail{
		{Message: "is required", In: "email"},
	}
	err := api.NewValidationError("invalid input", "def-456", details)

	if err.Category != api.CategoryValidationError {
		t.Errorf("Category = %q, want %q", err.Category, api.CategoryValidationError)
	}
	if len(err.Errors) != 1 {
		t.Fatalf("Errors length = %d, want 1", len(err.Errors))
	}
	if err.Errors[0].In != "email" {
		t.Errorf("Errors[0].In = %q, want %q", err.Errors[0].In, "email")
	}
}

func TestErrorConstructorCategories(t *testing.T) {
	tests := []struct {
		name string
		err  *api.Error
		want string
	}{
		{"conflict", api.NewConflictError("already exists", "ghi-789"), api.CategoryConflict},
		{"unauthorized", api.NewUnauthorizedError("no session", "ghi-789"), api.CategoryUnauthorized},
		{"upstream", api.NewUpstreamError("image fetch failed", "ghi-789"), api.CategoryUpstreamError},
		{"internal", api.NewInternalError("boom", "ghi-789"), api.CategoryInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Category != tt.want {
				t.Errorf("Category = %q, want %q", tt.err.Category, tt.want)
			}
			if tt.err.Status != "error" {
				t.Errorf("Status = %q, want %q", tt.err.Status, "error")
			}
			if tt.err.CorrelationID != "ghi-789" {
				t.Errorf("CorrelationID = %q, want %q", tt.err.CorrelationID, "ghi-789")
			}
		})
	}
}

func TestWriteErrorResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	apiErr := api.NewNotFoundError("not found", "test-id")

	api.WriteError(rec, http.StatusNotFound, apiErr)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status code = %d, want %d", rec.Code, http.StatusNotFound)
	}

	ct := rec.Header().Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/json")
	}

	var result api.Error
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}
	if result.CorrelationID != "test-id" {
		t.Errorf("correlationId = %q, want %q", result.CorrelationID, "test-id")
	}
}
