package handler

import (
	"errors"
	"go-feedback-app/internal/data"
	"go-feedback-app/internal/middleware"
	"go-feedback-app/internal/service"
	"net/http"
)

// appError maps service and repository errors onto the response taxonomy:
// not-found, blocked deletion (dependent rows), cross-reference mismatch,
// and everything else as an internal error.
func appError(err error, fallback string) *middleware.AppError {
	switch {
	case errors.Is(err, data.ErrNotFound):
		return &middleware.AppError{Error: err, Message: "Not found", Code: http.StatusNotFound}
	case errors.Is(err, data.ErrInUse):
		return &middleware.AppError{Error: err, Message: "Cannot delete: existing feedback still references this record.", Code: http.StatusConflict}
	case errors.Is(err, service.ErrParentMismatch),
		errors.Is(err, service.ErrCommentMismatch),
		errors.Is(err, service.ErrReplyDepth):
		return &middleware.AppError{Error: err, Message: err.Error(), Code: http.StatusBadRequest}
	case errors.Is(err, data.ErrEmailTaken):
		return &middleware.AppError{
			Error:   err,
			Message: "Validation failed",
			Code:    http.StatusUnprocessableEntity,
			Fields:  map[string]string{"email": "This email is already registered."},
		}
	case errors.Is(err, service.ErrInvalidCredentials):
		return &middleware.AppError{Error: err, Message: "Invalid email or password.", Code: http.StatusUnauthorized}
	default:
		return &middleware.AppError{Error: err, Message: fallback, Code: http.StatusInternalServerError}
	}
}
