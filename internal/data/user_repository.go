package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// UserRepository handles database operations for accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// ErrEmailTaken is returned when a registration reuses an existing email.
var ErrEmailTaken = fmt.Errorf("email already registered")

// CreateUser inserts an account. The admin flag is computed inside the insert
// itself (NOT EXISTS over the users table) so "first account ever created
// becomes admin" holds even when two first-time registrations race: the store
// serializes the statement, and exactly one insert observes an empty table.
func (r *UserRepository) CreateUser(ctx context.Context, user *User) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users (name, email, avatar, password_hash, provider_name, provider_id, is_admin)
		SELECT ?, ?, ?, ?, ?, ?, NOT EXISTS(SELECT 1 FROM users)`,
		user.Name, user.Email, user.Avatar, user.PasswordHash, user.ProviderName, user.ProviderID)
	if err != nil {
		if IsUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get user id: %w", err)
	}
	user.ID = id

	// Read back the computed admin flag for the caller's redirect decision.
	created, err := r.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	user.IsAdmin = created.IsAdmin
	return nil
}

const userColumns = `id, name, email, avatar, password_hash, is_admin, provider_name, provider_id, created_at`

// GetUserByID retrieves an account by its ID.
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*User, error) {
	var user User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &user, nil
}

// GetUserByEmail retrieves an account by email.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// GetUserByProvider retrieves an account by its external provider linkage.
func (r *UserRepository) GetUserByProvider(ctx context.Context, providerName, providerID string) (*User, error) {
	var user User
	query := `SELECT ` + userColumns + ` FROM users WHERE provider_name = ? AND provider_id = ?`
	if err := r.db.GetContext(ctx, &user, query, providerName, providerID); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by provider: %w", err)
	}
	return &user, nil
}

// UpdateProfile refreshes the mutable profile fields on provider login. The
// admin flag is never touched here; it is assigned once at creation and no
// later path reassigns it.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *User) error {
	query := `UPDATE users SET name = :name, email = :email, avatar = :avatar WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
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

// CountUsers returns the total number of accounts.
func (r *UserRepository) CountUsers(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
