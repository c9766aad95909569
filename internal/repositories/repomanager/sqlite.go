package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/docqa/internal/dbx"
	"github.com/dmitrijs2005/docqa/internal/logging"
	"github.com/dmitrijs2005/docqa/internal/migrations"
	"github.com/dmitrijs2005/docqa/internal/repositories/documents"
	"github.com/dmitrijs2005/docqa/internal/repositories/users"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends SQLite-backed repositories.
type SQLiteRepositoryManager struct {
	log logging.Logger
}

func NewSQLiteRepositoryManager(log logging.Logger) *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{log: orNop(log)}
}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Documents(db dbx.DBTX) documents.Repository {
	return documents.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, db, m.log, goose.DialectSQLite3, migrations.DirSQLite)
}
