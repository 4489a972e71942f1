package handler

import (
	"go-feedback-app/internal/logger"
	"go-feedback-app/internal/middleware"
	"go-feedback-app/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// maxImageBytes bounds uploaded changelog images (2 MiB, matching the public
// form's limit).
const maxImageBytes = 2 << 20

// ChangelogHandler serves the admin changelog management surface.
type ChangelogHandler struct {
	changelog *service.ChangelogService
	admin     *AdminHandler
	log       logger.Logger
}

// NewChangelogHandler creates a new ChangelogHandler. It borrows the admin
// handler's sidebar composition so every admin page carries the same stats.
func NewChangelogHandler(changelog *service.ChangelogService, admin *AdminHandler, log logger.Logger) *ChangelogHandler {
	return &ChangelogHandler{changelog: changelog, admin: admin, log: log}
}

// index renders the admin changelog list.
func (h *ChangelogHandler) index(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	changelogs, err := h.changelog.ListChangelogs(r.Context())
	if err != nil {
		return appError(err, "Failed to load changelog")
	}

	p := props{
		"changelogs":   changelogs,
		"currentRoute": "admin.changelog",
	}
	if appErr := h.admin.sidebar(r, p); appErr != nil {
		return appErr
	}

	if err := renderPage(w, "Admin/Changelog", p); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render changelog", Code: http.StatusInternalServerError}
	}
	return nil
}

// show renders a single entry by slug.
func (h *ChangelogHandler) show(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	changelog, err := h.changelog.GetChangelogBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		return appError(err, "Failed to load changelog")
	}

	p := props{
		"changelog":    changelog,
		"currentRoute": "admin.changelog",
	}
	if appErr := h.admin.sidebar(r, p); appErr != nil {
		return appErr
	}

	if err := renderPage(w, "Admin/ChangelogShow", p); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render changelog", Code: http.StatusInternalServerError}
	}
	return nil
}

// create renders the empty publish form.
func (h *ChangelogHandler) create(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	p := props{
		"currentRoute": "admin.changelog",
	}
	if appErr := h.admin.sidebar(r, p); appErr != nil {
		return appErr
	}

	if err := renderPage(w, "Admin/ChangelogCreate", p); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render changelog", Code: http.StatusInternalServerError}
	}
	return nil
}

type changelogForm struct {
	Title  string `validate:"required,max=255"`
	Source string `validate:"required"`
}

// parseChangelogForm reads the multipart form shared by store and update:
// title, markdown body, optional image upload.
func (h *ChangelogHandler) parseChangelogForm(r *http.Request) (*changelogForm, *service.ImageUpload, *middleware.AppError) {
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		return nil, nil, &middleware.AppError{Error: err, Message: "Malformed request body", Code: http.StatusBadRequest}
	}

	form := &changelogForm{
		Title:  r.FormValue("title"),
		Source: r.FormValue("description"),
	}
	if appErr := validateStruct(form); appErr != nil {
		return nil, nil, appErr
	}

	var image *service.ImageUpload
	if file, header, err := r.FormFile("image"); err == nil {
		image = &service.ImageUpload{Filename: header.Filename, Reader: file}
	}
	return form, image, nil
}

// store publishes a new changelog entry.
func (h *ChangelogHandler) store(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	userInfo := middleware.GetUserInfo(r.Context())

	form, image, appErr := h.parseChangelogForm(r)
	if appErr != nil {
		return appErr
	}

	changelog, err := h.changelog.CreateChangelog(r.Context(), userInfo.ID, form.Title, form.Source, image)
	if err != nil {
		return appError(err, "Failed to create changelog")
	}

	if err := renderJSON(w, http.StatusCreated, map[string]interface{}{
		"slug": changelog.Slug,
	}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render response", Code: http.StatusInternalServerError}
	}
	return nil
}

// edit renders the edit form props for an entry, addressed by slug.
func (h *ChangelogHandler) edit(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	changelog, err := h.changelog.GetChangelogBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		return appError(err, "Failed to load changelog")
	}

	p := props{
		"changelog":    changelog,
		"currentRoute": "admin.changelog",
	}
	if appErr := h.admin.sidebar(r, p); appErr != nil {
		return appErr
	}

	if err := renderPage(w, "Admin/ChangelogEdit", p); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render changelog", Code: http.StatusInternalServerError}
	}
	return nil
}

// update edits an entry. A "removeImage" form flag clears the current image;
// a new upload replaces it.
func (h *ChangelogHandler) update(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := urlID(r, "id")
	if appErr != nil {
		return appErr
	}

	form, image, appErr := h.parseChangelogForm(r)
	if appErr != nil {
		return appErr
	}
	removeImage := r.FormValue("removeImage") == "true"

	changelog, err := h.changelog.UpdateChangelog(r.Context(), id, form.Title, form.Source, removeImage, image)
	if err != nil {
		return appError(err, "Failed to update changelog")
	}

	if err := renderJSON(w, http.StatusOK, map[string]interface{}{
		"slug": changelog.Slug,
	}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render response", Code: http.StatusInternalServerError}
	}
	return nil
}

// destroy deletes an entry and its stored image.
func (h *ChangelogHandler) destroy(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := urlID(r, "id")
	if appErr != nil {
		return appErr
	}

	if err := h.changelog.DeleteChangelog(r.Context(), id); err != nil {
		return appError(err, "Failed to delete changelog")
	}

	if err := renderJSON(w, http.StatusOK, map[string]interface{}{"success": true}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render response", Code: http.StatusInternalServerError}
	}
	return nil
}
