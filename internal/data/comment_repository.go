package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CommentRepository handles database operations for comment threads: one
// level of top-level comments plus their direct replies.
type CommentRepository struct {
	db *sqlx.DB
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// CreateComment inserts a comment. Parent validation (same item, one level
// only) happens in the service before this is called.
func (r *CommentRepository) CreateComment(ctx context.Context, comment *Comment) error {
	res, err := r.db.NamedExecContext(ctx, `
		INSERT INTO comments (feedback_id, user_id, content, parent_id, pinned, internal)
		VALUES (:feedback_id, :user_id, :content, :parent_id, :pinned, :internal)`,
		comment)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get comment id: %w", err)
	}
	comment.ID = id
	return nil
}

// GetCommentByID retrieves a single comment by its ID.
func (r *CommentRepository) GetCommentByID(ctx context.Context, id int64) (*Comment, error) {
	var comment Comment
	query := `SELECT id, feedback_id, user_id, content, parent_id, pinned, internal, created_at FROM comments WHERE id = ?`
	if err := r.db.GetContext(ctx, &comment, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get comment by id: %w", err)
	}
	return &comment, nil
}

// TogglePin flips the comment's pinned flag and returns the new state. Any
// number of comments may be pinned at once.
func (r *CommentRepository) TogglePin(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE comments SET pinned = NOT pinned WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to toggle pin: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return false, ErrNotFound
	}

	var pinned bool
	if err := r.db.GetContext(ctx, &pinned, `SELECT pinned FROM comments WHERE id = ?`, id); err != nil {
		return false, fmt.Errorf("failed to read pinned state: %w", err)
	}
	return pinned, nil
}

// DeleteCommentWithReplies removes a comment and its direct replies in one
// transaction. One level only: replies cannot have replies, so there is
// nothing further to recurse into.
func (r *CommentRepository) DeleteCommentWithReplies(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE parent_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete replies: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// ThreadOptions selects the per-surface presentation of a thread.
type ThreadOptions struct {
	// PinnedFirst orders top-level comments pinned-first then newest
	// (admin surface); otherwise strictly oldest-first (public surface).
	PinnedFirst bool
	// PublicOnly excludes internal comments. The public path always sets
	// this; admin notes never leave the admin surface.
	PublicOnly bool
}

// ListThread returns the item's top-level comments with their replies
// attached. Replies are always oldest-first beneath their parent, whatever
// the top-level ordering.
func (r *CommentRepository) ListThread(ctx context.Context, feedbackID int64, opts ThreadOptions) ([]*Comment, error) {
	commentQuery := `
		SELECT c.id, c.feedback_id, c.user_id, c.content, c.parent_id, c.pinned, c.internal, c.created_at,
		       u.name AS user_name, u.avatar AS user_avatar
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.feedback_id = ? AND c.parent_id IS NULL`
	if opts.PublicOnly {
		commentQuery += ` AND c.internal = false`
	}
	if opts.PinnedFirst {
		commentQuery += ` ORDER BY c.pinned DESC, c.created_at DESC, c.id DESC`
	} else {
		commentQuery += ` ORDER BY c.created_at, c.id`
	}

	topLevel := []*Comment{}
	if err := r.db.SelectContext(ctx, &topLevel, commentQuery, feedbackID); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	replyQuery := `
		SELECT c.id, c.feedback_id, c.user_id, c.content, c.parent_id, c.pinned, c.internal, c.created_at,
		       u.name AS user_name, u.avatar AS user_avatar
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.feedback_id = ? AND c.parent_id IS NOT NULL`
	if opts.PublicOnly {
		replyQuery += ` AND c.internal = false`
	}
	replyQuery += ` ORDER BY c.created_at, c.id`

	replies := []*Comment{}
	if err := r.db.SelectContext(ctx, &replies, replyQuery, feedbackID); err != nil {
		return nil, fmt.Errorf("failed to list replies: %w", err)
	}

	byParent := make(map[int64][]*Comment, len(topLevel))
	for _, reply := range replies {
		byParent[*reply.ParentID] = append(byParent[*reply.ParentID], reply)
	}
	for _, comment := range topLevel {
		comment.Replies = byParent[comment.ID]
	}
	return topLevel, nil
}
