package handler

import (
	"go-feedback-app/internal/logger"
	"go-feedback-app/internal/middleware"
	"go-feedback-app/internal/service"
	"net/http"
)

// SettingsHandler serves the admin board and status management pages.
type SettingsHandler struct {
	settings *service.SettingsService
	admin    *AdminHandler
	log      logger.Logger
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settings *service.SettingsService, admin *AdminHandler, log logger.Logger) *SettingsHandler {
	return &SettingsHandler{settings: settings, admin: admin, log: log}
}

// index renders the settings page with boards and statuses, each annotated
// with how many feedback items reference them.
func (h *SettingsHandler) index(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	statuses, err := h.settings.ListStatuses(r.Context())
	if err != nil {
		return appError(err, "Failed to load statuses")
	}

	p := props{
		"statuses":     statuses,
		"currentRoute": "admin.settings",
	}
	if appErr := h.admin.sidebar(r, p); appErr != nil {
		return appErr
	}

	if err := renderPage(w, "Admin/Settings", p); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render settings", Code: http.StatusInternalServerError}
	}
	return nil
}

type boardRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Color       string `json:"color" validate:"required,max=50"`
	Description string `json:"description" validate:"max=500"`
}

// boardStore creates a board.
func (h *SettingsHandler) boardStore(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req boardRequest
	if appErr := decodeAndValidate(r, &req); appErr != nil {
		return appErr
	}

	board, err := h.settings.CreateBoard(r.Context(), req.Name, req.Color, req.Description)
	if err != nil {
		return appError(err, "Failed to create board")
	}

	if err := renderJSON(w, http.StatusCreated, board); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render response", Code: http.StatusInternalServerError}
	}
	return nil
}

// boardUpdate renames or recolors a board; the slug stays stable.
func (h *SettingsHandler) boardUpdate(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := urlID(r, "id")
	if appErr != nil {
		return appErr
	}

	var req boardRequest
	if appErr := decodeAndValidate(r, &req); appErr != nil {
		return appErr
	}

	if err := h.settings.UpdateBoard(r.Context(), id, req.Name, req.Color, req.Description); err != nil {
		return appError(err, "Failed to update board")
	}

	if err := renderJSON(w, http.StatusOK, map[string]interface{}{"success": true}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render response", Code: http.StatusInternalServerError}
	}
	return nil
}

// boardDestroy deletes a board. Responds 409 while feedback still references
// it.
func (h *SettingsHandler) boardDestroy(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := urlID(r, "id")
	if appErr != nil {
		return appErr
	}

	if err := h.settings.DeleteBoard(r.Context(), id); err != nil {
		return appError(err, "Failed to delete board")
	}

	if err := renderJSON(w, http.StatusOK, map[string]interface{}{"success": true}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render response", Code: http.StatusInternalServerError}
	}
	return nil
}

type statusRequest struct {
	Name          string `json:"name" validate:"required,max=255"`
	Color         string `json:"color" validate:"required,max=50"`
	ShowOnRoadmap bool   `json:"show_on_roadmap"`
}

// statusStore creates a status.
func (h *SettingsHandler) statusStore(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req statusRequest
	if appErr := decodeAndValidate(r, &req); appErr != nil {
		return appErr
	}

	status, err := h.settings.CreateStatus(r.Context(), req.Name, req.Color, req.ShowOnRoadmap)
	if err != nil {
		return appError(err, "Failed to create status")
	}

	if err := renderJSON(w, http.StatusCreated, status); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render response", Code: http.StatusInternalServerError}
	}
	return nil
}

// statusUpdate renames, recolors, or toggles roadmap visibility for a status.
func (h *SettingsHandler) statusUpdate(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := urlID(r, "id")
	if appErr != nil {
		return appErr
	}

	var req statusRequest
	if appErr := decodeAndValidate(r, &req); appErr != nil {
		return appErr
	}

	if err := h.settings.UpdateStatus(r.Context(), id, req.Name, req.Color, req.ShowOnRoadmap); err != nil {
		return appError(err, "Failed to update status")
	}

	if err := renderJSON(w, http.StatusOK, map[string]interface{}{"success": true}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render response", Code: http.StatusInternalServerError}
	}
	return nil
}

// statusDestroy deletes a status. Responds 409 while feedback still
// references it.
func (h *SettingsHandler) statusDestroy(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := urlID(r, "id")
	if appErr != nil {
		return appErr
	}

	if err := h.settings.DeleteStatus(r.Context(), id); err != nil {
		return appError(err, "Failed to delete status")
	}

	if err := renderJSON(w, http.StatusOK, map[string]interface{}{"success": true}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render response", Code: http.StatusInternalServerError}
	}
	return nil
}
