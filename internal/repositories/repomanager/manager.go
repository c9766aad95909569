// Package repomanager vends dialect-specific repository implementations and
// applies the matching embedded goose migrations.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/docqa/internal/dbx"
	"github.com/dmitrijs2005/docqa/internal/logging"
	"github.com/dmitrijs2005/docqa/internal/migrations"
	"github.com/dmitrijs2005/docqa/internal/repositories/documents"
	"github.com/dmitrijs2005/docqa/internal/repositories/users"
	"github.com/pressly/goose/v3"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Documents(db dbx.DBTX) documents.Repository
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// New returns the manager for driver ("sqlite" or "postgres"). Migration
// output goes to log; a nil log discards it.
func New(driver string, log logging.Logger) (RepositoryManager, error) {
	switch driver {
	case "sqlite":
		return NewSQLiteRepositoryManager(log), nil
	case "postgres":
		return NewPostgresRepositoryManager(log), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func orNop(log logging.Logger) logging.Logger {
	if log == nil {
		return logging.Nop()
	}
	return log
}

func runMigrations(ctx context.Context, db *sql.DB, log logging.Logger, dialect goose.Dialect, dir string) error {
	goose.SetLogger(&gooseLogger{ctx: ctx, log: log.With("component", "migrations")})
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, dir); err != nil {
		return err
	}
	return nil
}
