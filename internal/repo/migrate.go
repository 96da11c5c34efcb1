package repo

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	"github.com/pkordes/travel-planner/migrations"
)

// Dialect selects the migration set and goose dialect for a database.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Migrate applies every pending migration for the dialect to db.
// goose needs database/sql, so Postgres callers open a *sql.DB through the
// pgx stdlib driver for the duration of the migration.
func Migrate(ctx context.Context, dialect Dialect, db *sql.DB) error {
	var (
		gd   goose.Dialect
		fsys fs.FS
	)
	switch dialect {
	case DialectPostgres:
		gd, fsys = goose.DialectPostgres, migrations.Postgres()
	case DialectSQLite:
		gd, fsys = goose.DialectSQLite3, migrations.SQLite()
	default:
		return fmt.Errorf("repo.Migrate: unknown dialect %q", dialect)
	}

	provider, err := goose.NewProvider(gd, db, fsys)
	if err != nil {
		return fmt.Errorf("repo.Migrate: create goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("repo.Migrate: up: %w", err)
	}
	return nil
}
