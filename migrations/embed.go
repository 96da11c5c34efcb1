// Package migrations embeds the SQL migration files so they can be applied
// by the goose programmatic API at server start and in tests.
package migrations

import (
	"embed"
	"fmt"
	"io/fs"
)

// FS holds the migration files for every supported dialect, one directory
// per dialect.
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS

// Postgres returns the Postgres migrations rooted at their directory.
func Postgres() fs.FS { return mustSub("postgres") }

// SQLite returns the SQLite migrations rooted at their directory.
func SQLite() fs.FS { return mustSub("sqlite") }

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(FS, dir)
	if err != nil {
		panic(fmt.Sprintf("migrations: %s: %v", dir, err))
	}
	return sub
}
