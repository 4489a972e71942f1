package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// StatusRepository handles database operations for statuses.
type StatusRepository struct {
	db *sqlx.DB
}

// NewStatusRepository creates a new StatusRepository.
func NewStatusRepository(db *sqlx.DB) *StatusRepository {
	return &StatusRepository{db: db}
}

// CreateStatus inserts a new status.
func (r *StatusRepository) CreateStatus(ctx context.Context, status *Status) error {
	res, err := r.db.NamedExecContext(ctx,
		`INSERT INTO statuses (name, color, show_on_roadmap) VALUES (:name, :color, :show_on_roadmap)`,
		status)
	if err != nil {
		return fmt.Errorf("failed to create status: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get status id: %w", err)
	}
	status.ID = id
	return nil
}

// GetStatusByID retrieves a single status by its ID.
func (r *StatusRepository) GetStatusByID(ctx context.Context, id int64) (*Status, error) {
	var status Status
	query := `SELECT id, name, color, show_on_roadmap, created_at FROM statuses WHERE id = ?`
	if err := r.db.GetContext(ctx, &status, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get status by id: %w", err)
	}
	return &status, nil
}

// GetAllStatuses retrieves all statuses with feedback counts, ordered by
// creation.
func (r *StatusRepository) GetAllStatuses(ctx context.Context) ([]*Status, error) {
	var statuses []*Status
	query := `
		SELECT s.id, s.name, s.color, s.show_on_roadmap, s.created_at,
		       (SELECT COUNT(*) FROM feedback f WHERE f.status_id = s.id) AS feedback_count
		FROM statuses s
		ORDER BY s.id`
	if err := r.db.SelectContext(ctx, &statuses, query); err != nil {
		return nil, fmt.Errorf("failed to get statuses: %w", err)
	}
	return statuses, nil
}

// GetRoadmapStatuses retrieves only the statuses marked visible on the
// roadmap, ordered by creation.
func (r *StatusRepository) GetRoadmapStatuses(ctx context.Context) ([]*Status, error) {
	var statuses []*Status
	query := `SELECT id, name, color, show_on_roadmap, created_at FROM statuses WHERE show_on_roadmap = true ORDER BY id`
	if err := r.db.SelectContext(ctx, &statuses, query); err != nil {
		return nil, fmt.Errorf("failed to get roadmap statuses: %w", err)
	}
	return statuses, nil
}

// DefaultStatusID returns the ID of the first-created status, which is the
// default assigned to new feedback. Returns nil when no status exists.
func (r *StatusRepository) DefaultStatusID(ctx context.Context) (*int64, error) {
	var id int64
	if err := r.db.GetContext(ctx, &id, `SELECT id FROM statuses ORDER BY id LIMIT 1`); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get default status: %w", err)
	}
	return &id, nil
}

// UpdateStatus updates a status's name, color and roadmap visibility.
func (r *StatusRepository) UpdateStatus(ctx context.Context, status *Status) error {
	query := `UPDATE statuses SET name = :name, color = :color, show_on_roadmap = :show_on_roadmap WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, status)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetRoadmapVisibility flips only the show_on_roadmap flag.
func (r *StatusRepository) SetRoadmapVisibility(ctx context.Context, id int64, visible bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE statuses SET show_on_roadmap = ? WHERE id = ?`, visible, id)
	if err != nil {
		return fmt.Errorf("failed to update roadmap visibility: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteStatus removes a status. Deletion is blocked while any feedback item
// still references it.
func (r *StatusRepository) DeleteStatus(ctx context.Context, id int64) error {
	var count int
	if err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM feedback WHERE status_id = ?`, id); err != nil {
		return fmt.Errorf("failed to count status feedback: %w", err)
	}
	if count > 0 {
		return ErrInUse
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM statuses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete status: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
