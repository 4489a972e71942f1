package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ChangelogRepository handles database operations for changelog entries.
type ChangelogRepository struct {
	db *sqlx.DB
}

// NewChangelogRepository creates a new ChangelogRepository.
func NewChangelogRepository(db *sqlx.DB) *ChangelogRepository {
	return &ChangelogRepository{db: db}
}

// CreateChangelog inserts a new entry, deriving its slug with the same
// prefix-count policy boards use.
func (r *ChangelogRepository) CreateChangelog(ctx context.Context, changelog *Changelog) error {
	baseSlug := Slugify(changelog.Title)

	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM changelogs WHERE slug LIKE ?`, baseSlug+"%")
	if err != nil {
		return fmt.Errorf("failed to count changelog slugs: %w", err)
	}
	changelog.Slug = baseSlug
	if count > 0 {
		changelog.Slug = fmt.Sprintf("%s-%d", baseSlug, count)
	}

	res, err := r.db.NamedExecContext(ctx, `
		INSERT INTO changelogs (author_id, title, slug, description, source, image)
		VALUES (:author_id, :title, :slug, :description, :source, :image)`,
		changelog)
	if err != nil {
		return fmt.Errorf("failed to create changelog: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get changelog id: %w", err)
	}
	changelog.ID = id
	return nil
}

// GetChangelogByID retrieves a single entry by its ID.
func (r *ChangelogRepository) GetChangelogByID(ctx context.Context, id int64) (*Changelog, error) {
	var changelog Changelog
	if err := r.db.GetContext(ctx, &changelog, changelogQuery+` WHERE c.id = ?`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get changelog by id: %w", err)
	}
	return &changelog, nil
}

// GetChangelogBySlug retrieves a single entry by its slug.
func (r *ChangelogRepository) GetChangelogBySlug(ctx context.Context, slug string) (*Changelog, error) {
	var changelog Changelog
	if err := r.db.GetContext(ctx, &changelog, changelogQuery+` WHERE c.slug = ?`, slug); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get changelog by slug: %w", err)
	}
	return &changelog, nil
}

const changelogQuery = `
	SELECT c.id, c.author_id, c.title, c.slug, c.description, c.source, c.image, c.created_at,
	       u.name AS author_name, u.avatar AS author_avatar
	FROM changelogs c
	JOIN users u ON u.id = c.author_id`

// ListChangelogs returns all entries, newest first, with author summaries.
func (r *ChangelogRepository) ListChangelogs(ctx context.Context) ([]*Changelog, error) {
	changelogs := []*Changelog{}
	query := changelogQuery + ` ORDER BY c.created_at DESC, c.id DESC`
	if err := r.db.SelectContext(ctx, &changelogs, query); err != nil {
		return nil, fmt.Errorf("failed to list changelogs: %w", err)
	}
	return changelogs, nil
}

// UpdateChangelog updates an entry's title, content and image reference. The
// slug stays what it was at creation.
func (r *ChangelogRepository) UpdateChangelog(ctx context.Context, changelog *Changelog) error {
	query := `UPDATE changelogs SET title = :title, description = :description, source = :source, image = :image WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, changelog)
	if err != nil {
		return fmt.Errorf("failed to update changelog: %w", err)
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

// DeleteChangelog removes an entry.
func (r *ChangelogRepository) DeleteChangelog(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM changelogs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete changelog: %w", err)
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
