//go:build unit

package handler

import (
	"errors"
	"go-feedback-app/internal/data"
	"go-feedback-app/internal/service"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecodeAndValidate(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(
			`{"name":"Ada","email":"ada@example.com","password":"hunter2hunter2"}`))

		var dst registerRequest
		if appErr := decodeAndValidate(req, &dst); appErr != nil {
			t.Fatalf("unexpected error: %v", appErr.Message)
		}
		if dst.Email != "ada@example.com" {
			t.Errorf("want email 'ada@example.com'; got %q", dst.Email)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(`{"name":`))

		var dst registerRequest
		appErr := decodeAndValidate(req, &dst)
		if appErr == nil {
			t.Fatal("expected an error for malformed json")
		}
		if appErr.Code != http.StatusBadRequest {
			t.Errorf("want status %d; got %d", http.StatusBadRequest, appErr.Code)
		}
	})

	t.Run("validation failure produces field messages", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(
			`{"name":"","email":"not-an-email","password":"short"}`))

		var dst registerRequest
		appErr := decodeAndValidate(req, &dst)
		if appErr == nil {
			t.Fatal("expected a validation error")
		}
		if appErr.Code != http.StatusUnprocessableEntity {
			t.Errorf("want status %d; got %d", http.StatusUnprocessableEntity, appErr.Code)
		}
		if appErr.Fields["name"] != "This field is required." {
			t.Errorf("unexpected name message: %q", appErr.Fields["name"])
		}
		if appErr.Fields["email"] != "Must be a valid email address." {
			t.Errorf("unexpected email message: %q", appErr.Fields["email"])
		}
		if appErr.Fields["password"] != "Must be at least 8 characters." {
			t.Errorf("unexpected password message: %q", appErr.Fields["password"])
		}
	})
}

func TestAppErrorMapping(t *testing.T) {
	testCases := []struct {
		name        string
		err         error
		wantCode    int
		wantMessage string
	}{
		{"not found", data.ErrNotFound, http.StatusNotFound, "Not found"},
		{"record in use", data.ErrInUse, http.StatusConflict, "Cannot delete: existing feedback still references this record."},
		{"parent mismatch", service.ErrParentMismatch, http.StatusBadRequest, service.ErrParentMismatch.Error()},
		{"reply depth", service.ErrReplyDepth, http.StatusBadRequest, service.ErrReplyDepth.Error()},
		{"email taken", data.ErrEmailTaken, http.StatusUnprocessableEntity, "Validation failed"},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password."},
		{"unknown error", errors.New("disk full"), http.StatusInternalServerError, "Failed to save"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			appErr := appError(tc.err, "Failed to save")
			if appErr.Code != tc.wantCode {
				t.Errorf("want status %d; got %d", tc.wantCode, appErr.Code)
			}
			if appErr.Message != tc.wantMessage {
				t.Errorf("want message %q; got %q", tc.wantMessage, appErr.Message)
			}
		})
	}

	t.Run("email taken carries a field message", func(t *testing.T) {
		appErr := appError(data.ErrEmailTaken, "Failed to register")
		if appErr.Fields["email"] != "This email is already registered." {
			t.Errorf("unexpected email field message: %q", appErr.Fields["email"])
		}
	})
}
