package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the pure Go "sqlite" driver
)

// sqliteKVRepo is the SQLite implementation of KVRepo.
type sqliteKVRepo struct {
	db *sql.DB
}

// NewSQLiteKV constructs a KVRepo backed by an already migrated SQLite database.
func NewSQLiteKV(db *sql.DB) KVRepo {
	return &sqliteKVRepo{db: db}
}

// OpenSQLite opens the SQLite database at path, creating its parent directory
// when needed, and applies all pending migrations. Pass ":memory:" for a
// throwaway database. Callers are responsible for closing the returned *sql.DB.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("repo.OpenSQLite: path is required")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("repo.OpenSQLite: create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("repo.OpenSQLite: open: %w", err)
	}
	// A single connection serializes writers and keeps ":memory:" databases
	// alive for the lifetime of the handle.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("repo.OpenSQLite: pragma: %w", err)
	}
	if err := Migrate(ctx, DialectSQLite, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("repo.OpenSQLite: %w", err)
	}
	return db, nil
}

// Get retrieves the value for key.
func (r *sqliteKVRepo) Get(ctx context.Context, key string) (string, bool, error) {
	const q = `SELECT value FROM kv_entries WHERE key = ?`

	var value string
	err := r.db.QueryRowContext(ctx, q, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("repo.sqliteKVRepo.Get: %w", err)
	}
	return value, true, nil
}

// Set upserts the value for key.
func (r *sqliteKVRepo) Set(ctx context.Context, key, value string) error {
	const q = `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE
		SET value      = excluded.value,
		    updated_at = excluded.updated_at`

	if _, err := r.db.ExecContext(ctx, q, key, value, time.Now().UTC().UnixMilli()); err != nil {
		return fmt.Errorf("repo.sqliteKVRepo.Set: %w", err)
	}
	return nil
}

// Delete removes the row for key, if any.
func (r *sqliteKVRepo) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM kv_entries WHERE key = ?`

	if _, err := r.db.ExecContext(ctx, q, key); err != nil {
		return fmt.Errorf("repo.sqliteKVRepo.Delete: %w", err)
	}
	return nil
}
