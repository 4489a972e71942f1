package service

import (
	"context"
	"go-feedback-app/internal/data"
)

// Repository interfaces consumed by the services. The concrete sqlx
// implementations live in internal/data; tests substitute mocks.

// FeedbackRepository defines the database operations for feedback items.
type FeedbackRepository interface {
	CreateFeedback(ctx context.Context, feedback *data.Feedback) error
	GetFeedbackByID(ctx context.Context, id int64) (*data.Feedback, error)
	GetFeedbackBySlug(ctx context.Context, slug string, viewerID int64) (*data.FeedbackSummary, error)
	ListFeedback(ctx context.Context, opts data.ListOptions) ([]*data.FeedbackSummary, error)
	CountFeedback(ctx context.Context) (int, error)
	UpdateFeedback(ctx context.Context, id int64, statusID, boardID *int64) error
	DeleteFeedback(ctx context.Context, id int64) error
}

// UpvoteRepository defines the upvote-ledger operations.
type UpvoteRepository interface {
	ToggleUpvote(ctx context.Context, feedbackID, userID int64) (bool, int, error)
	CountUpvotes(ctx context.Context, feedbackID int64) (int, error)
	HasUpvoted(ctx context.Context, feedbackID, userID int64) (bool, error)
	UpvotedFeedbackIDs(ctx context.Context, userID int64) ([]int64, error)
	ListUpvoters(ctx context.Context, feedbackID int64, limit int) ([]*data.UserSummary, error)
}

// ReadRepository defines the read-tracking-ledger operations.
type ReadRepository interface {
	MarkRead(ctx context.Context, feedbackID, userID int64) error
	IsRead(ctx context.Context, feedbackID, userID int64) (bool, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
}

// BoardRepository defines the database operations for boards.
type BoardRepository interface {
	CreateBoard(ctx context.Context, board *data.Board) error
	GetBoardByID(ctx context.Context, id int64) (*data.Board, error)
	GetBoardBySlug(ctx context.Context, slug string) (*data.Board, error)
	GetAllBoards(ctx context.Context) ([]*data.Board, error)
	UpdateBoard(ctx context.Context, board *data.Board) error
	DeleteBoard(ctx context.Context, id int64) error
}

// StatusRepository defines the database operations for statuses.
type StatusRepository interface {
	CreateStatus(ctx context.Context, status *data.Status) error
	GetStatusByID(ctx context.Context, id int64) (*data.Status, error)
	GetAllStatuses(ctx context.Context) ([]*data.Status, error)
	GetRoadmapStatuses(ctx context.Context) ([]*data.Status, error)
	DefaultStatusID(ctx context.Context) (*int64, error)
	UpdateStatus(ctx context.Context, status *data.Status) error
	SetRoadmapVisibility(ctx context.Context, id int64, visible bool) error
	DeleteStatus(ctx context.Context, id int64) error
}

// CommentRepository defines the database operations for comment threads.
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *data.Comment) error
	GetCommentByID(ctx context.Context, id int64) (*data.Comment, error)
	TogglePin(ctx context.Context, id int64) (bool, error)
	DeleteCommentWithReplies(ctx context.Context, id int64) error
	ListThread(ctx context.Context, feedbackID int64, opts data.ThreadOptions) ([]*data.Comment, error)
}

// ChangelogRepository defines the database operations for changelog entries.
type ChangelogRepository interface {
	CreateChangelog(ctx context.Context, changelog *data.Changelog) error
	GetChangelogByID(ctx context.Context, id int64) (*data.Changelog, error)
	GetChangelogBySlug(ctx context.Context, slug string) (*data.Changelog, error)
	ListChangelogs(ctx context.Context) ([]*data.Changelog, error)
	UpdateChangelog(ctx context.Context, changelog *data.Changelog) error
	DeleteChangelog(ctx context.Context, id int64) error
}

// UserRepository defines the database operations for accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user *data.User) error
	GetUserByID(ctx context.Context, id int64) (*data.User, error)
	GetUserByEmail(ctx context.Context, email string) (*data.User, error)
	GetUserByProvider(ctx context.Context, providerName, providerID string) (*data.User, error)
	UpdateProfile(ctx context.Context, user *data.User) error
	CountUsers(ctx context.Context) (int, error)
}
