// Package sqliteutil opens sqlite-compatible databases, either a local
// file through modernc.org/sqlite or a remote libsql server, and
// applies an embedded schema on open.
package sqliteutil

import (
	"database/sql"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// OpenDB opens the database at `path` and applies `schema` to it.
// Paths prefixed with libsql:// are dialed as remote libsql databases,
// anything else is treated as a local sqlite file.
func OpenDB(schema string, path string) (*sql.DB, error) {
	driver := "sqlite"
	if strings.HasPrefix(path, "libsql://") {
		driver = "libsql"
	}
	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, err
	}

	if driver == "sqlite" {
		// see https://stackoverflow.com/questions/35804884 for why
		// local sqlite gets WAL and a single connection
		db.SetMaxOpenConns(1)
		_, err = db.Exec("PRAGMA journal_mode=WAL")
		if err != nil {
			db.Close()
			return nil, err
		}
	}

	_, err = db.Exec(schema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		db.Close()
		return nil, err
	}
	return db, nil
}
