package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// pgKVRepo is the Postgres implementation of KVRepo.
type pgKVRepo struct {
	db db
}

// NewPostgresKV constructs a KVRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostgresKV(db db) KVRepo {
	return &pgKVRepo{db: db}
}

// Get retrieves the value for key.
func (r *pgKVRepo) Get(ctx context.Context, key string) (string, bool, error) {
	const q = `SELECT value FROM kv_entries WHERE key = @key`

	var value string
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key}).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("repo.pgKVRepo.Get: %w", err)
	}
	return value, true, nil
}

// Set upserts the value for key.
func (r *pgKVRepo) Set(ctx context.Context, key, value string) error {
	const q = `
		INSERT INTO kv_entries (key, value)
		VALUES (@key, @value)
		ON CONFLICT (key) DO UPDATE
		SET value      = EXCLUDED.value,
		    updated_at = now()`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"key": key, "value": value}); err != nil {
		return fmt.Errorf("repo.pgKVRepo.Set: %w", err)
	}
	return nil
}

// Delete removes the row for key, if any.
func (r *pgKVRepo) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM kv_entries WHERE key = @key`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"key": key}); err != nil {
		return fmt.Errorf("repo.pgKVRepo.Delete: %w", err)
	}
	return nil
}
