package data

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// UpvoteRepository handles the per-(feedback, user) upvote ledger.
type UpvoteRepository struct {
	db *sqlx.DB
}

// NewUpvoteRepository creates a new UpvoteRepository.
func NewUpvoteRepository(db *sqlx.DB) *UpvoteRepository {
	return &UpvoteRepository{db: db}
}

// ToggleUpvote flips the upvote state for the pair and returns the new state
// together with the item's new total. The delete-first form makes the toggle
// idempotent in pairs; when two concurrent toggles race past the delete and
// both insert, the unique key on (feedback_id, user_id) fails the loser, which
// is treated as "already upvoted" rather than surfaced.
func (r *UpvoteRepository) ToggleUpvote(ctx context.Context, feedbackID, userID int64) (bool, int, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM upvotes WHERE feedback_id = ? AND user_id = ?`, feedbackID, userID)
	if err != nil {
		return false, 0, fmt.Errorf("failed to delete upvote: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return false, 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	upvoted := false
	if deleted == 0 {
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO upvotes (feedback_id, user_id) VALUES (?, ?)`, feedbackID, userID)
		if err != nil && !IsUniqueViolation(err) {
			return false, 0, fmt.Errorf("failed to insert upvote: %w", err)
		}
		upvoted = true
	}

	count, err := r.CountUpvotes(ctx, feedbackID)
	if err != nil {
		return false, 0, err
	}
	return upvoted, count, nil
}

// CountUpvotes returns the item's upvote total.
func (r *UpvoteRepository) CountUpvotes(ctx context.Context, feedbackID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM upvotes WHERE feedback_id = ?`, feedbackID)
	if err != nil {
		return 0, fmt.Errorf("failed to count upvotes: %w", err)
	}
	return count, nil
}

// HasUpvoted reports whether the user has upvoted the item.
func (r *UpvoteRepository) HasUpvoted(ctx context.Context, feedbackID, userID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM upvotes WHERE feedback_id = ? AND user_id = ?)`,
		feedbackID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check upvote: %w", err)
	}
	return exists, nil
}

// UpvotedFeedbackIDs returns the ids of all feedback items the user has
// upvoted, for annotating listing views.
func (r *UpvoteRepository) UpvotedFeedbackIDs(ctx context.Context, userID int64) ([]int64, error) {
	ids := []int64{}
	err := r.db.SelectContext(ctx, &ids,
		`SELECT feedback_id FROM upvotes WHERE user_id = ? ORDER BY feedback_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list upvoted ids: %w", err)
	}
	return ids, nil
}

// ListUpvoters returns users who upvoted the item, oldest upvote first. A
// limit of 0 means no limit.
func (r *UpvoteRepository) ListUpvoters(ctx context.Context, feedbackID int64, limit int) ([]*UserSummary, error) {
	query := `
		SELECT u.id, u.name, u.avatar
		FROM upvotes uv
		JOIN users u ON u.id = uv.user_id
		WHERE uv.feedback_id = ?
		ORDER BY uv.id`
	args := []interface{}{feedbackID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	upvoters := []*UserSummary{}
	if err := r.db.SelectContext(ctx, &upvoters, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list upvoters: %w", err)
	}
	return upvoters, nil
}
