// Package storage opens the single *sql.DB handle shared by every
// repository.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/docqa/internal/filex"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

var sqlOpen = sql.Open

// Open connects to driver ("sqlite" or "postgres") at dsn and verifies the
// connection. SQLite handles are limited to a single connection, which
// serializes every write through the database.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)

	switch driver {
	case "sqlite":
		if path := sqlitePath(dsn); path != "" {
			if err := filex.EnsureParentDir(path); err != nil {
				return nil, err
			}
		}
		db, err = sqlOpen("sqlite", SQLiteDSN(dsn))
		if err != nil {
			return nil, fmt.Errorf("db open error: %w", err)
		}
		db.SetMaxOpenConns(1)
	case "postgres":
		db, err = sqlOpen("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("db open error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	return db, nil
}

// SQLiteDSN appends the connection pragmas docqa relies on to dsn.
func SQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "_pragma=foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + sqlitePragmas
}

// sqlitePath returns the filesystem path named by dsn, or "" for in-memory
// databases.
func sqlitePath(dsn string) string {
	path, _, _ := strings.Cut(dsn, "?")
	path = strings.TrimPrefix(path, "file:")
	if path == "" || path == ":memory:" || strings.HasPrefix(path, ":memory:") {
		return ""
	}
	return path
}
