package service

import (
	"context"
	"go-feedback-app/internal/data"
)

// FeedbackService provides business logic for feedback items and the
// aggregated views built on top of the upvote and read-tracking ledgers.
type FeedbackService struct {
	feedback FeedbackRepository
	upvotes  UpvoteRepository
	reads    ReadRepository
	boards   BoardRepository
	statuses StatusRepository
	comments CommentRepository
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(feedback FeedbackRepository, upvotes UpvoteRepository, reads ReadRepository,
	boards BoardRepository, statuses StatusRepository, comments CommentRepository) *FeedbackService {
	return &FeedbackService{
		feedback: feedback,
		upvotes:  upvotes,
		reads:    reads,
		boards:   boards,
		statuses: statuses,
		comments: comments,
	}
}

// SubmitFeedback creates a feedback item on behalf of a user. The item lands
// on the given board with the first-created status (if any) and a slug derived
// from the title.
func (s *FeedbackService) SubmitFeedback(ctx context.Context, authorID int64, title, description string, boardID int64) (*data.Feedback, error) {
	if _, err := s.boards.GetBoardByID(ctx, boardID); err != nil {
		return nil, err
	}

	statusID, err := s.statuses.DefaultStatusID(ctx)
	if err != nil {
		return nil, err
	}

	feedback := &data.Feedback{
		Title:       title,
		Description: description,
		BoardID:     boardID,
		StatusID:    statusID,
		AuthorID:    authorID,
	}
	if err := s.feedback.CreateFeedback(ctx, feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

// ListFeedback returns annotated feedback rows for the given filters,
// newest-created first.
func (s *FeedbackService) ListFeedback(ctx context.Context, opts data.ListOptions) ([]*data.FeedbackSummary, error) {
	return s.feedback.ListFeedback(ctx, opts)
}

// FeedbackDetail is the full view-model for a single item's page.
type FeedbackDetail struct {
	Feedback    *data.FeedbackSummary `json:"feedback"`
	Comments    []*data.Comment       `json:"comments"`
	Upvoters    []*data.UserSummary   `json:"upvoters"`
	UpvoteCount int                   `json:"upvoteCount"`
	HasUpvoted  bool                  `json:"hasUpvoted"`
}

// Detail loads a feedback item by slug with its comment thread and upvoter
// sample. The admin surface gets pinned-first threads including internal
// notes; the public surface gets chronological threads with internal notes
// excluded. Viewing through either surface never marks the item read.
func (s *FeedbackService) Detail(ctx context.Context, slug string, viewerID int64, adminSurface bool) (*FeedbackDetail, error) {
	summary, err := s.feedback.GetFeedbackBySlug(ctx, slug, viewerID)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListThread(ctx, summary.ID, data.ThreadOptions{
		PinnedFirst: adminSurface,
		PublicOnly:  !adminSurface,
	})
	if err != nil {
		return nil, err
	}

	upvoterLimit := 10
	if adminSurface {
		upvoterLimit = 0
	}
	upvoters, err := s.upvotes.ListUpvoters(ctx, summary.ID, upvoterLimit)
	if err != nil {
		return nil, err
	}

	return &FeedbackDetail{
		Feedback:    summary,
		Comments:    comments,
		Upvoters:    upvoters,
		UpvoteCount: summary.UpvoteCount,
		HasUpvoted:  summary.HasUpvoted,
	}, nil
}

// RoadmapView groups roadmap-visible feedback by status for column
// presentation. Hidden statuses and their feedback are absent entirely.
type RoadmapView struct {
	Statuses []*data.Status                    `json:"statuses"`
	ByStatus map[int64][]*data.FeedbackSummary `json:"feedbacksByStatus"`
}

// Roadmap builds the status-grouped roadmap. The admin surface lists every
// status (so visibility can be toggled) while still grouping only visible
// feedback; the public surface lists visible statuses only.
func (s *FeedbackService) Roadmap(ctx context.Context, viewerID int64, includeHiddenStatuses bool) (*RoadmapView, error) {
	var statuses []*data.Status
	var err error
	if includeHiddenStatuses {
		statuses, err = s.statuses.GetAllStatuses(ctx)
	} else {
		statuses, err = s.statuses.GetRoadmapStatuses(ctx)
	}
	if err != nil {
		return nil, err
	}

	items, err := s.feedback.ListFeedback(ctx, data.ListOptions{
		ViewerID:    viewerID,
		RoadmapOnly: true,
	})
	if err != nil {
		return nil, err
	}

	byStatus := make(map[int64][]*data.FeedbackSummary)
	for _, item := range items {
		if item.StatusID == nil {
			continue
		}
		byStatus[*item.StatusID] = append(byStatus[*item.StatusID], item)
	}

	return &RoadmapView{Statuses: statuses, ByStatus: byStatus}, nil
}

// ToggleUpvote flips the viewer's upvote on the item and returns the new
// state with the new total.
func (s *FeedbackService) ToggleUpvote(ctx context.Context, feedbackID, userID int64) (bool, int, error) {
	if _, err := s.feedback.GetFeedbackByID(ctx, feedbackID); err != nil {
		return false, 0, err
	}
	return s.upvotes.ToggleUpvote(ctx, feedbackID, userID)
}

// MarkRead records an explicit mark-as-read. Idempotent.
func (s *FeedbackService) MarkRead(ctx context.Context, feedbackID, userID int64) error {
	if _, err := s.feedback.GetFeedbackByID(ctx, feedbackID); err != nil {
		return err
	}
	return s.reads.MarkRead(ctx, feedbackID, userID)
}

// UpvotedFeedbackIDs returns the ids the viewer has upvoted, for annotating
// the public listing.
func (s *FeedbackService) UpvotedFeedbackIDs(ctx context.Context, userID int64) ([]int64, error) {
	return s.upvotes.UpvotedFeedbackIDs(ctx, userID)
}

// Reassign moves an item to another status and/or board. Nil fields are left
// as they are; non-nil references must exist.
func (s *FeedbackService) Reassign(ctx context.Context, id int64, statusID, boardID *int64) error {
	if _, err := s.feedback.GetFeedbackByID(ctx, id); err != nil {
		return err
	}
	if statusID != nil {
		if _, err := s.statuses.GetStatusByID(ctx, *statusID); err != nil {
			return err
		}
	}
	if boardID != nil {
		if _, err := s.boards.GetBoardByID(ctx, *boardID); err != nil {
			return err
		}
	}
	return s.feedback.UpdateFeedback(ctx, id, statusID, boardID)
}

// DeleteFeedback removes an item with its comments, upvotes and read records.
func (s *FeedbackService) DeleteFeedback(ctx context.Context, id int64) error {
	return s.feedback.DeleteFeedback(ctx, id)
}

// SidebarStats are the admin sidebar's totals, recomputed on every request
// straight from the ledgers. Never cached, so there is nothing to invalidate.
type SidebarStats struct {
	TotalCount  int `json:"totalCount"`
	UnreadCount int `json:"unreadCount"`
}

// Sidebar returns the per-admin total and unread feedback counts.
func (s *FeedbackService) Sidebar(ctx context.Context, userID int64) (*SidebarStats, error) {
	total, err := s.feedback.CountFeedback(ctx)
	if err != nil {
		return nil, err
	}
	unread, err := s.reads.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &SidebarStats{TotalCount: total, UnreadCount: unread}, nil
}
