package handler

import (
	"encoding/json"
	"fmt"
	"go-feedback-app/internal/middleware"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// validate is the shared validator for request payloads.
var validate = validator.New()

// decodeAndValidate decodes a JSON request body into dst and validates its
// tags. Returns a 422 AppError with per-field messages on validation failure,
// a 400 on malformed JSON.
func decodeAndValidate(r *http.Request, dst interface{}) *middleware.AppError {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &middleware.AppError{Error: err, Message: "Malformed request body", Code: http.StatusBadRequest}
	}
	return validateStruct(dst)
}

// validateStruct validates dst's tags and converts failures into field-level
// messages.
func validateStruct(dst interface{}) *middleware.AppError {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &middleware.AppError{Error: err, Message: "Invalid request", Code: http.StatusBadRequest}
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fieldErr := range validationErrs {
		name := strings.ToLower(fieldErr.Field())
		switch fieldErr.Tag() {
		case "required":
			fields[name] = "This field is required."
		case "max":
			fields[name] = fmt.Sprintf("Must be at most %s characters.", fieldErr.Param())
		case "min":
			fields[name] = fmt.Sprintf("Must be at least %s characters.", fieldErr.Param())
		case "email":
			fields[name] = "Must be a valid email address."
		default:
			fields[name] = "This value is invalid."
		}
	}
	return &middleware.AppError{
		Error:   err,
		Message: "Validation failed",
		Code:    http.StatusUnprocessableEntity,
		Fields:  fields,
	}
}

// urlID parses a numeric id from a chi URL parameter.
func urlID(r *http.Request, param string) (int64, *middleware.AppError) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &middleware.AppError{
			Error:   fmt.Errorf("invalid %s: %q", param, raw),
			Message: "Not found",
			Code:    http.StatusNotFound,
		}
	}
	return id, nil
}
