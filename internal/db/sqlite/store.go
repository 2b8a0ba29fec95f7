// Package sqlite provides the durable session timeline for ccnotify.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// schema is additive-only; initialization is safe to run on every
// process start, including concurrently with another invocation.
const schema = `
CREATE TABLE IF NOT EXISTS prompt (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id        TEXT NOT NULL,
	created_at        TEXT NOT NULL,
	created_at_epoch  INTEGER NOT NULL,
	prompt            TEXT,
	cwd               TEXT,
	seq               INTEGER NOT NULL,
	stopped_at        TEXT,
	last_wait_user_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_prompt_session ON prompt(session_id, created_at_epoch);
`

// StoreConfig holds database configuration.
type StoreConfig struct {
	Path   string
	Logger zerolog.Logger
}

// Store wraps the SQLite connection shared by the per-entity stores.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewStore opens the database, applies pragmas, and ensures the schema.
// WAL mode and a busy timeout let concurrent hook invocations share the
// file; a writer that still finds it locked is retried by RetryBusy.
func NewStore(cfg StoreConfig) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite prefers a single writer per process.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set synchronous mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, log: cfg.Logger}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying connection for tests and raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ExecContext executes a statement.
func (s *Store) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return s.db.ExecContext(ctx, query, args...)
}

// QueryContext executes a query returning rows.
func (s *Store) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, query, args...)
}

// QueryRowContext executes a query returning at most one row.
func (s *Store) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return s.db.QueryRowContext(ctx, query, args...)
}

// busyRetryAttempts bounds how long a mutation waits on a locked file
// beyond the driver's own busy timeout.
const busyRetryAttempts = 3

// RetryBusy runs fn, retrying on lock contention with short doubling
// waits. Exhaustion returns the last error; the caller logs and abandons
// the mutation for this invocation.
func (s *Store) RetryBusy(ctx context.Context, fn func() error) error {
	delay := 50 * time.Millisecond

	var err error
	for attempt := 1; attempt <= busyRetryAttempts; attempt++ {
		err = fn()
		if err == nil || !isBusy(err) {
			return err
		}
		if attempt < busyRetryAttempts {
			s.log.Debug().Err(err).Int("attempt", attempt).Msg("database locked, retrying")
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
			delay *= 2
		}
	}
	return err
}

// isBusy reports whether err is SQLite lock contention.
func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "SQLITE_BUSY")
}
