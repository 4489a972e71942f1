package handler

import (
	"go-feedback-app/internal/data"
	"go-feedback-app/internal/logger"
	"go-feedback-app/internal/middleware"
	"go-feedback-app/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// AdminHandler serves the triage dashboard: filtered feedback listings,
// per-item detail with internal notes, read marking, and roadmap management.
type AdminHandler struct {
	feedback *service.FeedbackService
	comments *service.CommentService
	settings *service.SettingsService
	log      logger.Logger
}

// NewAdminHandler creates a new AdminHandler with the given dependencies.
func NewAdminHandler(feedback *service.FeedbackService, comments *service.CommentService,
	settings *service.SettingsService, log logger.Logger) *AdminHandler {
	return &AdminHandler{
		feedback: feedback,
		comments: comments,
		settings: settings,
		log:      log,
	}
}

// sidebar assembles the props every admin page carries: boards with counts
// and the per-admin total/unread stats, recomputed fresh on each request.
func (h *AdminHandler) sidebar(r *http.Request, p props) *middleware.AppError {
	ctx := r.Context()
	userInfo := middleware.GetUserInfo(ctx)

	boards, err := h.settings.ListBoards(ctx)
	if err != nil {
		return appError(err, "Failed to load boards")
	}
	stats, err := h.feedback.Sidebar(ctx, userInfo.ID)
	if err != nil {
		return appError(err, "Failed to load sidebar stats")
	}

	p["boards"] = boards
	p["sidebarStats"] = stats
	return nil
}

// dashboard renders the feedback listing, optionally filtered to unread
// items or a single board. The unread filter and unread count share the same
// anti-join against the read ledger.
func (h *AdminHandler) dashboard(unreadOnly bool) middleware.AppHandler {
	return func(w http.ResponseWriter, r *http.Request) *middleware.AppError {
		ctx := r.Context()
		userInfo := middleware.GetUserInfo(ctx)

		opts := data.ListOptions{ViewerID: userInfo.ID, UnreadOnly: unreadOnly}

		var currentFilter *string
		if unreadOnly {
			f := "unread"
			currentFilter = &f
		}

		var currentBoardID *int64
		if slug := chi.URLParam(r, "slug"); slug != "" {
			boards, err := h.settings.ListBoards(ctx)
			if err != nil {
				return appError(err, "Failed to load boards")
			}
			for _, b := range boards {
				if b.Slug == slug {
					opts.BoardID = b.ID
					currentBoardID = &b.ID
					break
				}
			}
		}

		feedbacks, err := h.feedback.ListFeedback(ctx, opts)
		if err != nil {
			return appError(err, "Failed to load feedback")
		}
		statuses, err := h.settings.ListStatuses(ctx)
		if err != nil {
			return appError(err, "Failed to load statuses")
		}

		p := props{
			"feedbacks":      feedbacks,
			"statuses":       statuses,
			"currentFilter":  currentFilter,
			"currentBoardId": currentBoardID,
			"currentRoute":   "admin.dashboard",
		}
		if appErr := h.sidebar(r, p); appErr != nil {
			return appErr
		}

		if err := renderPage(w, "Admin/Dashboard", p); err != nil {
			return &middleware.AppError{Error: err, Message: "Failed to render dashboard", Code: http.StatusInternalServerError}
		}
		return nil
	}
}

// feedbackShow renders the triage detail for one item: full thread including
// internal notes, pinned-first; all upvoters. Viewing does not mark the item
// read; that is the explicit mark-as-read action's job.
func (h *AdminHandler) feedbackShow(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	ctx := r.Context()
	userInfo := middleware.GetUserInfo(ctx)
	slug := chi.URLParam(r, "slug")

	detail, err := h.feedback.Detail(ctx, slug, userInfo.ID, true)
	if err != nil {
		return appError(err, "Failed to load feedback")
	}
	statuses, err := h.settings.ListStatuses(ctx)
	if err != nil {
		return appError(err, "Failed to load statuses")
	}

	p := props{
		"feedback":    detail.Feedback,
		"comments":    detail.Comments,
		"upvoteCount": detail.UpvoteCount,
		"upvoters":    detail.Upvoters,
		"hasUpvoted":  detail.HasUpvoted,
		"statuses":    statuses,
	}
	if appErr := h.sidebar(r, p); appErr != nil {
		return appErr
	}

	if err := renderPage(w, "Admin/RequestDetail", p); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render feedback detail", Code: http.StatusInternalServerError}
	}
	return nil
}

type updateFeedbackRequest struct {
	StatusID *int64 `json:"statusId"`
	BoardID  *int64 `json:"boardId"`
}

// feedbackUpdate reassigns an item's status and/or board.
func (h *AdminHandler) feedbackUpdate(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := urlID(r, "id")
	if appErr != nil {
		return appErr
	}

	var req updateFeedbackRequest
	if appErr := decodeAndValidate(r, &req); appErr != nil {
		return appErr
	}

	if err := h.feedback.Reassign(r.Context(), id, req.StatusID, req.BoardID); err != nil {
		return appError(err, "Failed to update feedback")
	}

	if err := renderJSON(w, http.StatusOK, map[string]interface{}{"success": true}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render response", Code: http.StatusInternalServerError}
	}
	return nil
}

// feedbackDestroy deletes an item and everything attached to it.
func (h *AdminHandler) feedbackDestroy(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := urlID(r, "id")
	if appErr != nil {
		return appErr
	}

	if err := h.feedback.DeleteFeedback(r.Context(), id); err != nil {
		return appError(err, "Failed to delete feedback")
	}

	if err := renderJSON(w, http.StatusOK, map[string]interface{}{"success": true}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render response", Code: http.StatusInternalServerError}
	}
	return nil
}

// markRead records the explicit mark-as-read action for the current admin.
func (h *AdminHandler) markRead(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	userInfo := middleware.GetUserInfo(r.Context())
	id, appErr := urlID(r, "id")
	if appErr != nil {
		return appErr
	}

	if err := h.feedback.MarkRead(r.Context(), id, userInfo.ID); err != nil {
		return appError(err, "Failed to mark feedback read")
	}

	if err := renderJSON(w, http.StatusOK, map[string]interface{}{"success": true}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render response", Code: http.StatusInternalServerError}
	}
	return nil
}

// upvote toggles the admin's own upvote on an item.
func (h *AdminHandler) upvote(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	userInfo := middleware.GetUserInfo(r.Context())
	id, appErr := urlID(r, "id")
	if appErr != nil {
		return appErr
	}

	upvoted, count, err := h.feedback.ToggleUpvote(r.Context(), id, userInfo.ID)
	if err != nil {
		return appError(err, "Failed to toggle upvote")
	}

	if err := renderJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"upvoted":     upvoted,
		"upvoteCount": count,
	}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render response", Code: http.StatusInternalServerError}
	}
	return nil
}

// commentStore adds an internal admin note (or reply) to an item.
func (h *AdminHandler) commentStore(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	userInfo := middleware.GetUserInfo(r.Context())
	id, appErr := urlID(r, "id")
	if appErr != nil {
		return appErr
	}

	var req storeCommentRequest
	if appErr := decodeAndValidate(r, &req); appErr != nil {
		return appErr
	}

	comment, err := h.comments.AddComment(r.Context(), id, userInfo.ID, req.Content, req.ParentID, true)
	if err != nil {
		return appError(err, "Failed to create comment")
	}

	if err := renderJSON(w, http.StatusCreated, comment); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render response", Code: http.StatusInternalServerError}
	}
	return nil
}

// commentPin toggles a comment's pinned flag.
func (h *AdminHandler) commentPin(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := urlID(r, "id")
	if appErr != nil {
		return appErr
	}
	commentID, appErr := urlID(r, "commentID")
	if appErr != nil {
		return appErr
	}

	pinned, err := h.comments.TogglePin(r.Context(), id, commentID)
	if err != nil {
		return appError(err, "Failed to toggle pin")
	}

	if err := renderJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"pinned":  pinned,
	}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render response", Code: http.StatusInternalServerError}
	}
	return nil
}

// commentDestroy deletes a comment and its direct replies.
func (h *AdminHandler) commentDestroy(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := urlID(r, "id")
	if appErr != nil {
		return appErr
	}
	commentID, appErr := urlID(r, "commentID")
	if appErr != nil {
		return appErr
	}

	if err := h.comments.DeleteComment(r.Context(), id, commentID); err != nil {
		return appError(err, "Failed to delete comment")
	}

	if err := renderJSON(w, http.StatusOK, map[string]interface{}{"success": true}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render response", Code: http.StatusInternalServerError}
	}
	return nil
}

// roadmap renders the admin roadmap: every status (so visibility can be
// toggled) with visible feedback grouped by status.
func (h *AdminHandler) roadmap(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	userInfo := middleware.GetUserInfo(r.Context())

	view, err := h.feedback.Roadmap(r.Context(), userInfo.ID, true)
	if err != nil {
		return appError(err, "Failed to load roadmap")
	}

	p := props{
		"statuses":          view.Statuses,
		"feedbacksByStatus": view.ByStatus,
		"currentRoute":      "admin.roadmap",
	}
	if appErr := h.sidebar(r, p); appErr != nil {
		return appErr
	}

	if err := renderPage(w, "Admin/Roadmap", p); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render roadmap", Code: http.StatusInternalServerError}
	}
	return nil
}

type roadmapVisibilityRequest struct {
	ShowOnRoadmap *bool `json:"showOnRoadmap" validate:"required"`
}

// roadmapVisibility updates whether a status appears as a roadmap column.
func (h *AdminHandler) roadmapVisibility(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := urlID(r, "id")
	if appErr != nil {
		return appErr
	}

	var req roadmapVisibilityRequest
	if appErr := decodeAndValidate(r, &req); appErr != nil {
		return appErr
	}

	if err := h.settings.SetRoadmapVisibility(r.Context(), id, *req.ShowOnRoadmap); err != nil {
		return appError(err, "Failed to update roadmap visibility")
	}

	if err := renderJSON(w, http.StatusOK, map[string]interface{}{"success": true}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render response", Code: http.StatusInternalServerError}
	}
	return nil
}
