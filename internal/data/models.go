package data

import (
	"time"
)

// User is a registered account. Exactly one user carries the admin flag: the
// first account ever created, through either the password or the provider path.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Avatar       *string   `db:"avatar" json:"avatar"`
	PasswordHash *string   `db:"password_hash" json:"-"`
	IsAdmin      bool      `db:"is_admin" json:"isAdmin"`
	ProviderName *string   `db:"provider_name" json:"-"`
	ProviderID   *string   `db:"provider_id" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// Board groups feedback items. The slug is derived once at creation and never
// regenerated on rename.
type Board struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Slug          string    `db:"slug" json:"slug"`
	Color         string    `db:"color" json:"color"`
	Description   string    `db:"description" json:"description"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	FeedbackCount int       `db:"feedback_count" json:"feedbackCount"`
}

// Status is a triage stage for feedback items. Statuses with ShowOnRoadmap set
// form the roadmap columns.
type Status struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Color         string    `db:"color" json:"color"`
	ShowOnRoadmap bool      `db:"show_on_roadmap" json:"showOnRoadmap"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	FeedbackCount int       `db:"feedback_count" json:"feedbackCount"`
}

// Feedback is a single submitted item. StatusID is nullable: an item created
// before any status exists carries none.
type Feedback struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Slug        string    `db:"slug" json:"slug"`
	Description string    `db:"description" json:"description"`
	BoardID     int64     `db:"board_id" json:"boardId"`
	StatusID    *int64    `db:"status_id" json:"statusId"`
	AuthorID    int64     `db:"author_id" json:"authorId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// FeedbackSummary is a feedback row annotated for listing views: author, board
// and status summaries, derived counts, and the per-viewer read/upvote flags.
type FeedbackSummary struct {
	Feedback
	AuthorName   string  `db:"author_name" json:"authorName"`
	AuthorEmail  string  `db:"author_email" json:"authorEmail"`
	AuthorAvatar *string `db:"author_avatar" json:"authorAvatar"`
	BoardName    string  `db:"board_name" json:"boardName"`
	BoardSlug    string  `db:"board_slug" json:"boardSlug"`
	BoardColor   string  `db:"board_color" json:"boardColor"`
	StatusName   *string `db:"status_name" json:"statusName"`
	StatusColor  *string `db:"status_color" json:"statusColor"`
	UpvoteCount  int     `db:"upvote_count" json:"upvoteCount"`
	CommentCount int     `db:"comment_count" json:"commentCount"`
	IsRead       bool    `db:"is_read" json:"isRead"`
	HasUpvoted   bool    `db:"has_upvoted" json:"hasUpvoted"`
}

// Comment belongs to a feedback item. ParentID links a reply to its top-level
// comment; replies may not themselves have replies, which is enforced at the
// write boundary rather than in the schema. Internal comments are
// admin-authored notes and never leave the admin surface.
type Comment struct {
	ID         int64      `db:"id" json:"id"`
	FeedbackID int64      `db:"feedback_id" json:"feedbackId"`
	UserID     int64      `db:"user_id" json:"userId"`
	Content    string     `db:"content" json:"content"`
	ParentID   *int64     `db:"parent_id" json:"parentId"`
	Pinned     bool       `db:"pinned" json:"pinned"`
	Internal   bool       `db:"internal" json:"internal"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
	UserName   string     `db:"user_name" json:"userName"`
	UserAvatar *string    `db:"user_avatar" json:"userAvatar"`
	Replies    []*Comment `db:"-" json:"replies,omitempty"`
}

// Upvote records that a user has upvoted a feedback item. Existence is the
// whole record; the (feedback, user) pair is unique.
type Upvote struct {
	ID         int64     `db:"id" json:"id"`
	FeedbackID int64     `db:"feedback_id" json:"feedbackId"`
	UserID     int64     `db:"user_id" json:"userId"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// FeedbackRead records that a user has read a feedback item. Never deleted.
type FeedbackRead struct {
	ID         int64     `db:"id" json:"id"`
	FeedbackID int64     `db:"feedback_id" json:"feedbackId"`
	UserID     int64     `db:"user_id" json:"userId"`
	ReadAt     time.Time `db:"read_at" json:"readAt"`
}

// Changelog is an admin-authored release note. Description holds sanitized
// HTML; Source holds the markdown it was rendered from.
type Changelog struct {
	ID           int64     `db:"id" json:"id"`
	AuthorID     int64     `db:"author_id" json:"authorId"`
	Title        string    `db:"title" json:"title"`
	Slug         string    `db:"slug" json:"slug"`
	Description  string    `db:"description" json:"description"`
	Source       string    `db:"source" json:"source"`
	Image        *string   `db:"image" json:"image"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	AuthorName   string    `db:"author_name" json:"authorName"`
	AuthorAvatar *string   `db:"author_avatar" json:"authorAvatar"`
}

// UserSummary is the slice of a user exposed in aggregated views.
type UserSummary struct {
	ID     int64   `db:"id" json:"id"`
	Name   string  `db:"name" json:"name"`
	Avatar *string `db:"avatar" json:"avatar"`
}
