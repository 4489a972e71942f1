//go:build unit

package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"go-feedback-app/internal/config"
	"go-feedback-app/internal/logger"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestErrorMiddleware(t *testing.T) {
	t.Run("passes through a successful handler", func(t *testing.T) {
		var logOut bytes.Buffer
		wrap := Error(logger.New(config.LogConfig{Level: "info", Format: "json"}, &logOut))

		h := wrap(func(w http.ResponseWriter, r *http.Request) *AppError {
			w.WriteHeader(http.StatusCreated)
			return nil
		})

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("POST", "/feedback", nil))

		if rec.Code != http.StatusCreated {
			t.Errorf("expected status 201, got %d", rec.Code)
		}
		if logOut.Len() != 0 {
			t.Errorf("expected no log output, got %q", logOut.String())
		}
	})

	t.Run("renders a client error as JSON without logging", func(t *testing.T) {
		var logOut bytes.Buffer
		wrap := Error(logger.New(config.LogConfig{Level: "info", Format: "json"}, &logOut))

		h := wrap(func(w http.ResponseWriter, r *http.Request) *AppError {
			return &AppError{Message: "Not found", Code: http.StatusNotFound}
		})

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "/feedback/missing", nil))

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}
		var body map[string]interface{}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body["error"] != "Not found" {
			t.Errorf("expected error message 'Not found', got %v", body["error"])
		}
		if logOut.Len() != 0 {
			t.Errorf("client errors should not be logged, got %q", logOut.String())
		}
	})

	t.Run("includes field messages for validation errors", func(t *testing.T) {
		var logOut bytes.Buffer
		wrap := Error(logger.New(config.LogConfig{Level: "info", Format: "json"}, &logOut))

		h := wrap(func(w http.ResponseWriter, r *http.Request) *AppError {
			return &AppError{
				Message: "Validation failed",
				Code:    http.StatusUnprocessableEntity,
				Fields:  map[string]string{"email": "This email is already registered."},
			}
		})

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("POST", "/auth/register", nil))

		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("expected status 422, got %d", rec.Code)
		}
		var body struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body.Fields["email"] != "This email is already registered." {
			t.Errorf("expected email field message, got %v", body.Fields)
		}
	})

	t.Run("logs server errors", func(t *testing.T) {
		var logOut bytes.Buffer
		wrap := Error(logger.New(config.LogConfig{Level: "info", Format: "json"}, &logOut))

		h := wrap(func(w http.ResponseWriter, r *http.Request) *AppError {
			return &AppError{
				Error:   errors.New("connection refused"),
				Message: "An internal error occurred.",
				Code:    http.StatusInternalServerError,
			}
		})

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "/feedback", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected status 500, got %d", rec.Code)
		}
		if !strings.Contains(logOut.String(), "connection refused") {
			t.Errorf("expected the underlying error to be logged, got %q", logOut.String())
		}
	})

	t.Run("recovers panics with a 500 response", func(t *testing.T) {
		var logOut bytes.Buffer
		wrap := Error(logger.New(config.LogConfig{Level: "info", Format: "json"}, &logOut))

		h := wrap(func(w http.ResponseWriter, r *http.Request) *AppError {
			panic("boom")
		})

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "/feedback", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected status 500, got %d", rec.Code)
		}
		var body map[string]interface{}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body["error"] != "Internal Server Error" {
			t.Errorf("expected generic 500 message, got %v", body["error"])
		}
		if !strings.Contains(logOut.String(), "Panic recovered") {
			t.Errorf("expected the panic to be logged, got %q", logOut.String())
		}
	})
}
