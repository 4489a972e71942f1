package data

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// ReadRepository handles the per-(feedback, user) read-tracking ledger.
// Records are only ever created; nothing deletes them except a feedback
// cascade.
type ReadRepository struct {
	db *sqlx.DB
}

// NewReadRepository creates a new ReadRepository.
func NewReadRepository(db *sqlx.DB) *ReadRepository {
	return &ReadRepository{db: db}
}

// MarkRead records that the user has read the item. Idempotent: an existing
// record for the pair makes this a no-op, including when a concurrent
// MarkRead wins the insert race and the unique key rejects ours.
func (r *ReadRepository) MarkRead(ctx context.Context, feedbackID, userID int64) error {
	read, err := r.IsRead(ctx, feedbackID, userID)
	if err != nil {
		return err
	}
	if read {
		return nil
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO feedback_reads (feedback_id, user_id, read_at) VALUES (?, ?, ?)`,
		feedbackID, userID, time.Now())
	if err != nil && !IsUniqueViolation(err) {
		return fmt.Errorf("failed to insert read record: %w", err)
	}
	return nil
}

// IsRead reports whether the user has read the item.
func (r *ReadRepository) IsRead(ctx context.Context, feedbackID, userID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM feedback_reads WHERE feedback_id = ? AND user_id = ?)`,
		feedbackID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check read record: %w", err)
	}
	return exists, nil
}

// UnreadCount returns how many feedback items have no read record for the
// user. Computed as an anti-join rather than a count subtraction, so created
// and deleted items are reflected immediately without any backfill.
func (r *ReadRepository) UnreadCount(ctx context.Context, userID int64) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM feedback f
		WHERE NOT EXISTS(
			SELECT 1 FROM feedback_reads fr
			WHERE fr.feedback_id = f.id AND fr.user_id = ?)`
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("failed to count unread feedback: %w", err)
	}
	return count, nil
}
