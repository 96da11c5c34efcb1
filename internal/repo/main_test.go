package repo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/pkordes/travel-planner/internal/repo"
	"github.com/pkordes/travel-planner/testutil"
)

// TestMain applies all pending Postgres migrations to the test database before
// any test runs, so individual tests never need to think about schema state.
// SQLite and memory tests do not depend on it.
func TestMain(m *testing.M) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		os.Exit(m.Run())
	}

	db := testutil.MustOpenSQLDB(os.Getenv("TEST_DATABASE_URL"))
	defer db.Close()

	if err := repo.Migrate(context.Background(), repo.DialectPostgres, db); err != nil {
		log.Fatalf("TestMain: run migrations: %v", err)
	}

	os.Exit(m.Run())
}
