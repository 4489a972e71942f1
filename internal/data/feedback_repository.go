package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// FeedbackRepository handles database operations for feedback items and the
// listing views composed on top of them.
type FeedbackRepository struct {
	db *sqlx.DB
}

// NewFeedbackRepository creates a new FeedbackRepository.
func NewFeedbackRepository(db *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// CreateFeedback inserts a new feedback item, deriving its slug from the
// title. Collisions are resolved by probing exact matches: "base", then
// "base-1", "base-2", and so on until a free slug is found. This differs from
// the prefix-count policy used for boards and changelog entries on purpose.
func (r *FeedbackRepository) CreateFeedback(ctx context.Context, feedback *Feedback) error {
	baseSlug := Slugify(feedback.Title)
	slug := baseSlug
	for count := 1; ; count++ {
		var exists bool
		err := r.db.GetContext(ctx, &exists,
			`SELECT EXISTS(SELECT 1 FROM feedback WHERE slug = ?)`, slug)
		if err != nil {
			return fmt.Errorf("failed to probe feedback slug: %w", err)
		}
		if !exists {
			break
		}
		slug = fmt.Sprintf("%s-%d", baseSlug, count)
	}
	feedback.Slug = slug

	res, err := r.db.NamedExecContext(ctx, `
		INSERT INTO feedback (title, slug, description, board_id, status_id, author_id)
		VALUES (:title, :slug, :description, :board_id, :status_id, :author_id)`,
		feedback)
	if err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get feedback id: %w", err)
	}
	feedback.ID = id
	return nil
}

// GetFeedbackByID retrieves a single feedback item by its ID.
func (r *FeedbackRepository) GetFeedbackByID(ctx context.Context, id int64) (*Feedback, error) {
	var feedback Feedback
	query := `SELECT id, title, slug, description, board_id, status_id, author_id, created_at FROM feedback WHERE id = ?`
	if err := r.db.GetContext(ctx, &feedback, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get feedback by id: %w", err)
	}
	return &feedback, nil
}

// GetFeedbackBySlug retrieves a single feedback item by slug, annotated for
// the viewer like a listing row.
func (r *FeedbackRepository) GetFeedbackBySlug(ctx context.Context, slug string, viewerID int64) (*FeedbackSummary, error) {
	var summary FeedbackSummary
	query := summaryQuery + ` WHERE f.slug = ?`
	if err := r.db.GetContext(ctx, &summary, query, viewerID, viewerID, slug); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get feedback by slug: %w", err)
	}
	return &summary, nil
}

// ListOptions narrows and personalizes a feedback listing. A zero ViewerID
// (anonymous) yields false for all per-viewer flags.
type ListOptions struct {
	ViewerID    int64
	BoardID     int64 // 0 = all boards
	UnreadOnly  bool  // items without a read record for ViewerID
	RoadmapOnly bool  // items whose status is visible on the roadmap
}

// summaryQuery is the shared projection for annotated feedback rows. Counts
// come from correlated subqueries; the per-viewer flags are EXISTS checks
// bound to the two leading arguments.
const summaryQuery = `
	SELECT f.id, f.title, f.slug, f.description, f.board_id, f.status_id, f.author_id, f.created_at,
	       u.name AS author_name, u.email AS author_email, u.avatar AS author_avatar,
	       b.name AS board_name, b.slug AS board_slug, b.color AS board_color,
	       s.name AS status_name, s.color AS status_color,
	       (SELECT COUNT(*) FROM upvotes uv WHERE uv.feedback_id = f.id) AS upvote_count,
	       (SELECT COUNT(*) FROM comments c WHERE c.feedback_id = f.id) AS comment_count,
	       EXISTS(SELECT 1 FROM feedback_reads fr WHERE fr.feedback_id = f.id AND fr.user_id = ?) AS is_read,
	       EXISTS(SELECT 1 FROM upvotes uv2 WHERE uv2.feedback_id = f.id AND uv2.user_id = ?) AS has_upvoted
	FROM feedback f
	JOIN users u ON u.id = f.author_id
	JOIN boards b ON b.id = f.board_id
	LEFT JOIN statuses s ON s.id = f.status_id`

// ListFeedback returns annotated feedback rows, newest-created first. The
// unread filter is the same NOT EXISTS anti-join used for the unread count, so
// it stays correct as items come and go without any ledger backfill.
func (r *FeedbackRepository) ListFeedback(ctx context.Context, opts ListOptions) ([]*FeedbackSummary, error) {
	query := summaryQuery
	args := []interface{}{opts.ViewerID, opts.ViewerID}

	where := " WHERE 1=1"
	if opts.BoardID != 0 {
		where += " AND f.board_id = ?"
		args = append(args, opts.BoardID)
	}
	if opts.UnreadOnly {
		where += ` AND NOT EXISTS(
			SELECT 1 FROM feedback_reads fr2
			WHERE fr2.feedback_id = f.id AND fr2.user_id = ?)`
		args = append(args, opts.ViewerID)
	}
	if opts.RoadmapOnly {
		where += " AND s.show_on_roadmap = true"
	}

	query += where + " ORDER BY f.created_at DESC, f.id DESC"

	summaries := []*FeedbackSummary{}
	if err := r.db.SelectContext(ctx, &summaries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return summaries, nil
}

// CountFeedback returns the total number of feedback items.
func (r *FeedbackRepository) CountFeedback(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM feedback`); err != nil {
		return 0, fmt.Errorf("failed to count feedback: %w", err)
	}
	return count, nil
}

// UpdateFeedback reassigns an item's status and/or board. A nil field is left
// untouched. Title, description and slug are immutable through this path.
func (r *FeedbackRepository) UpdateFeedback(ctx context.Context, id int64, statusID, boardID *int64) error {
	query := "UPDATE feedback SET id = id"
	args := []interface{}{}
	if statusID != nil {
		query += ", status_id = ?"
		args = append(args, *statusID)
	}
	if boardID != nil {
		query += ", board_id = ?"
		args = append(args, *boardID)
	}
	query += " WHERE id = ?"
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update feedback: %w", err)
	}
	if _, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	return nil
}

// DeleteFeedback removes an item and everything hanging off it: comments,
// upvotes and read records go in the same transaction so a failure leaves no
// partial state.
func (r *FeedbackRepository) DeleteFeedback(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM comments WHERE feedback_id = ?`,
		`DELETE FROM upvotes WHERE feedback_id = ?`,
		`DELETE FROM feedback_reads WHERE feedback_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return fmt.Errorf("failed to delete feedback dependents: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM feedback WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete feedback: %w", err)
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
