package handler

import (
	"go-feedback-app/internal/data"
	"go-feedback-app/internal/logger"
	"go-feedback-app/internal/middleware"
	"go-feedback-app/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// PublicHandler serves the member-facing feedback board, roadmap and
// changelog pages.
type PublicHandler struct {
	feedback  *service.FeedbackService
	comments  *service.CommentService
	changelog *service.ChangelogService
	settings  *service.SettingsService
	log       logger.Logger
}

// NewPublicHandler creates a new PublicHandler with the given dependencies.
func NewPublicHandler(feedback *service.FeedbackService, comments *service.CommentService,
	changelog *service.ChangelogService, settings *service.SettingsService, log logger.Logger) *PublicHandler {
	return &PublicHandler{
		feedback:  feedback,
		comments:  comments,
		changelog: changelog,
		settings:  settings,
		log:       log,
	}
}

// feedbackIndex renders the public board: all boards with counts, all
// statuses, every feedback item annotated with counts, plus the ids the
// viewer has upvoted.
func (h *PublicHandler) feedbackIndex(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	ctx := r.Context()
	userInfo := middleware.GetUserInfo(ctx)

	boards, err := h.settings.ListBoards(ctx)
	if err != nil {
		return appError(err, "Failed to load boards")
	}
	statuses, err := h.settings.ListStatuses(ctx)
	if err != nil {
		return appError(err, "Failed to load statuses")
	}
	feedbacks, err := h.feedback.ListFeedback(ctx, data.ListOptions{ViewerID: userInfo.ID})
	if err != nil {
		return appError(err, "Failed to load feedback")
	}

	upvotedIDs := []int64{}
	if userInfo.ID != 0 {
		upvotedIDs, err = h.feedback.UpvotedFeedbackIDs(ctx, userInfo.ID)
		if err != nil {
			return appError(err, "Failed to load upvotes")
		}
	}

	if err := renderPage(w, "Member/Feedback", props{
		"boards":     boards,
		"statuses":   statuses,
		"feedbacks":  feedbacks,
		"upvotedIds": upvotedIDs,
	}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render feedback page", Code: http.StatusInternalServerError}
	}
	return nil
}

// feedbackShow renders a single item with its public comment thread and a
// sample of upvoters. Internal admin notes are excluded here.
func (h *PublicHandler) feedbackShow(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	ctx := r.Context()
	userInfo := middleware.GetUserInfo(ctx)
	slug := chi.URLParam(r, "slug")

	detail, err := h.feedback.Detail(ctx, slug, userInfo.ID, false)
	if err != nil {
		return appError(err, "Failed to load feedback")
	}

	if err := renderPage(w, "Member/FeedbackShow", props{
		"feedback":    detail.Feedback,
		"comments":    detail.Comments,
		"upvoteCount": detail.UpvoteCount,
		"upvoters":    detail.Upvoters,
		"hasUpvoted":  detail.HasUpvoted,
	}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render feedback page", Code: http.StatusInternalServerError}
	}
	return nil
}

type storeFeedbackRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required,max=500"`
	BoardID     int64  `json:"boardId" validate:"required"`
}

// feedbackStore accepts a member's feedback submission.
func (h *PublicHandler) feedbackStore(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	userInfo := middleware.GetUserInfo(r.Context())

	var req storeFeedbackRequest
	if appErr := decodeAndValidate(r, &req); appErr != nil {
		return appErr
	}

	feedback, err := h.feedback.SubmitFeedback(r.Context(), userInfo.ID, req.Title, req.Description, req.BoardID)
	if err != nil {
		return appError(err, "Failed to create feedback")
	}

	if err := renderJSON(w, http.StatusCreated, map[string]interface{}{
		"slug": feedback.Slug,
	}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render response", Code: http.StatusInternalServerError}
	}
	return nil
}

// upvote toggles the viewer's upvote on an item.
func (h *PublicHandler) upvote(w http.ResponseWriter, r *http.Request) *middleware.AppError {
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

type storeCommentRequest struct {
	Content  string `json:"content" validate:"required,max=1000"`
	ParentID *int64 `json:"parentId"`
}

// commentStore adds a public comment or reply to an item.
func (h *PublicHandler) commentStore(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	userInfo := middleware.GetUserInfo(r.Context())
	id, appErr := urlID(r, "id")
	if appErr != nil {
		return appErr
	}

	var req storeCommentRequest
	if appErr := decodeAndValidate(r, &req); appErr != nil {
		return appErr
	}

	comment, err := h.comments.AddComment(r.Context(), id, userInfo.ID, req.Content, req.ParentID, false)
	if err != nil {
		return appError(err, "Failed to create comment")
	}

	if err := renderJSON(w, http.StatusCreated, comment); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render response", Code: http.StatusInternalServerError}
	}
	return nil
}

// roadmap renders the public roadmap: visible statuses only, feedback grouped
// by status.
func (h *PublicHandler) roadmap(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	userInfo := middleware.GetUserInfo(r.Context())

	view, err := h.feedback.Roadmap(r.Context(), userInfo.ID, false)
	if err != nil {
		return appError(err, "Failed to load roadmap")
	}

	if err := renderPage(w, "Member/Roadmap", props{
		"statuses":          view.Statuses,
		"feedbacksByStatus": view.ByStatus,
	}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render roadmap", Code: http.StatusInternalServerError}
	}
	return nil
}

// changelogIndex renders the public changelog list, newest first.
func (h *PublicHandler) changelogIndex(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	changelogs, err := h.changelog.ListChangelogs(r.Context())
	if err != nil {
		return appError(err, "Failed to load changelog")
	}

	if err := renderPage(w, "Member/Changelog", props{
		"changelogs": changelogs,
	}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render changelog", Code: http.StatusInternalServerError}
	}
	return nil
}

// changelogShow renders a single changelog entry by slug.
func (h *PublicHandler) changelogShow(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	changelog, err := h.changelog.GetChangelogBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		return appError(err, "Failed to load changelog")
	}

	if err := renderPage(w, "Member/ChangelogShow", props{
		"changelog": changelog,
	}); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render changelog", Code: http.StatusInternalServerError}
	}
	return nil
}
