// Package repo contains the persistence adapter of the travel planner: a
// key-value store holding one JSON document per key.
// Each backend has its own file implementing KVRepo.
// No business logic lives here, only SQL and value plumbing.
package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// KVRepo defines the persistence operations the services depend on.
// Values are opaque strings; decoding them is the caller's concern.
type KVRepo interface {
	// Get returns the value stored under key. found is false when the key is
	// absent; that is not an error.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
