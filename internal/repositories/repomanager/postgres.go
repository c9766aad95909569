package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/docqa/internal/dbx"
	"github.com/dmitrijs2005/docqa/internal/logging"
	"github.com/dmitrijs2005/docqa/internal/migrations"
	"github.com/dmitrijs2005/docqa/internal/repositories/documents"
	"github.com/dmitrijs2005/docqa/internal/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories.
type PostgresRepositoryManager struct {
	log logging.Logger
}

func NewPostgresRepositoryManager(log logging.Logger) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{log: orNop(log)}
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Documents(db dbx.DBTX) documents.Repository {
	return documents.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, db, m.log, goose.DialectPostgres, migrations.DirPostgres)
}
