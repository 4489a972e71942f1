//go:build integration

package data

import (
	"context"
	"fmt"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// setupTestDB creates a new in-memory SQLite database with the full schema.
// Each test gets its own database for complete isolation.
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", "file::memory:")
	if err != nil {
		t.Fatalf("Failed to connect to sqlite test database: %v", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	schema := `
	CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		avatar TEXT,
		password_hash TEXT,
		is_admin BOOLEAN NOT NULL DEFAULT 0,
		provider_name TEXT,
		provider_id TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (provider_name, provider_id)
	);
	CREATE TABLE boards (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		color TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE statuses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		color TEXT NOT NULL,
		show_on_roadmap BOOLEAN NOT NULL DEFAULT 1,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE feedback (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL,
		board_id INTEGER NOT NULL REFERENCES boards (id),
		status_id INTEGER REFERENCES statuses (id),
		author_id INTEGER NOT NULL REFERENCES users (id),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE comments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		feedback_id INTEGER NOT NULL REFERENCES feedback (id),
		user_id INTEGER NOT NULL REFERENCES users (id),
		content TEXT NOT NULL,
		parent_id INTEGER REFERENCES comments (id),
		pinned BOOLEAN NOT NULL DEFAULT 0,
		internal BOOLEAN NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE upvotes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		feedback_id INTEGER NOT NULL REFERENCES feedback (id),
		user_id INTEGER NOT NULL REFERENCES users (id),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (feedback_id, user_id)
	);
	CREATE TABLE feedback_reads (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		feedback_id INTEGER NOT NULL REFERENCES feedback (id),
		user_id INTEGER NOT NULL REFERENCES users (id),
		read_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (feedback_id, user_id)
	);
	CREATE TABLE changelogs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		author_id INTEGER NOT NULL REFERENCES users (id),
		title TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL,
		source TEXT NOT NULL,
		image TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`
	db.MustExec(schema)

	t.Cleanup(func() { db.Close() })
	return db
}

func seedUser(t *testing.T, db *sqlx.DB, email string) *User {
	t.Helper()
	user := &User{Name: "Test User", Email: email}
	if err := NewUserRepository(db).CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedBoard(t *testing.T, db *sqlx.DB, name string) *Board {
	t.Helper()
	board := &Board{Name: name, Color: "#6366f1"}
	if err := NewBoardRepository(db).CreateBoard(context.Background(), board); err != nil {
		t.Fatalf("failed to seed board: %v", err)
	}
	return board
}

func seedStatus(t *testing.T, db *sqlx.DB, name string, showOnRoadmap bool) *Status {
	t.Helper()
	status := &Status{Name: name, Color: "#22c55e", ShowOnRoadmap: showOnRoadmap}
	if err := NewStatusRepository(db).CreateStatus(context.Background(), status); err != nil {
		t.Fatalf("failed to seed status: %v", err)
	}
	return status
}

func seedFeedback(t *testing.T, db *sqlx.DB, title string, boardID, authorID int64, statusID *int64) *Feedback {
	t.Helper()
	feedback := &Feedback{
		Title:       title,
		Description: fmt.Sprintf("description for %s", title),
		BoardID:     boardID,
		StatusID:    statusID,
		AuthorID:    authorID,
	}
	if err := NewFeedbackRepository(db).CreateFeedback(context.Background(), feedback); err != nil {
		t.Fatalf("failed to seed feedback: %v", err)
	}
	return feedback
}
