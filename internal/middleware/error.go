package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"go-feedback-app/internal/logger"
	"net/http"
)

// AppError represents a custom error type for the application. Fields carries
// per-field validation messages for 422 responses.
type AppError struct {
	Error   error
	Message string
	Code    int
	Fields  map[string]string
}

// AppHandler is a custom handler function type that returns an AppError.
type AppHandler func(http.ResponseWriter, *http.Request) *AppError

// Error is a middleware that converts handler errors into JSON error
// responses and recovers panics.
func Error(log logger.Logger) func(AppHandler) http.Handler {
	writeError := func(w http.ResponseWriter, code int, message string, fields map[string]string) {
		body := map[string]interface{}{"error": message}
		if len(fields) > 0 {
			body["fields"] = fields
		}

		// Encode into a buffer first to catch any errors before writing
		// the response header.
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			http.Error(w, http.StatusText(code), code)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		buf.WriteTo(w)
	}

	return func(next AppHandler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err, ok := rec.(error)
					if !ok {
						err = fmt.Errorf("%v", rec)
					}
					log.Error(err, "Panic recovered")
					writeError(w, http.StatusInternalServerError, "Internal Server Error", nil)
				}
			}()

			if err := next(w, r); err != nil {
				if err.Code >= http.StatusInternalServerError {
					log.Error(err.Error, err.Message)
				}
				writeError(w, err.Code, err.Message, err.Fields)
			}
		})
	}
}
