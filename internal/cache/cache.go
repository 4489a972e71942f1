package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"go-feedback-app/internal/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Cache is a small SQLite-backed side cache. The application uses it for
// rendered changelog HTML; entries are cheap to rebuild, so expiry is lazy
// and a lost cache file is harmless.
type Cache struct {
	db *sqlx.DB
}

// New opens the cache database at the configured path, switches it to WAL
// mode and ensures the entries table exists.
func New(cfg config.CacheConfig) (*Cache, error) {
	db, err := sqlx.Connect("sqlite", cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite cache: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("failed to set WAL mode on sqlite cache: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		expires_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_entries_expires_at ON entries (expires_at);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Get returns the cached value for key, or nil on a miss. An expired entry
// counts as a miss and is removed on the way out.
func (c *Cache) Get(key string) ([]byte, error) {
	var entry struct {
		Value     []byte `db:"value"`
		ExpiresAt int64  `db:"expires_at"`
	}
	err := c.db.Get(&entry, `SELECT value, expires_at FROM entries WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}

	if entry.ExpiresAt <= time.Now().Unix() {
		_ = c.Delete(key)
		return nil, nil
	}
	return entry.Value, nil
}

// Set stores value under key for the given TTL, replacing any prior entry.
func (c *Cache) Set(key string, value []byte, ttl time.Duration) error {
	expiresAt := time.Now().Add(ttl).Unix()
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO entries (key, value, expires_at) VALUES (?, ?, ?)`,
		key, value, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Delete removes the entry for key. Deleting a missing key is not an error.
func (c *Cache) Delete(key string) error {
	if _, err := c.db.Exec(`DELETE FROM entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// PurgeExpired drops every entry past its expiry. Called opportunistically;
// Get already treats stale entries as misses.
func (c *Cache) PurgeExpired() error {
	if _, err := c.db.Exec(`DELETE FROM entries WHERE expires_at <= ?`, time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to purge expired cache entries: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}
