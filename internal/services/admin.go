package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/docqa/internal/models"
	"github.com/dmitrijs2005/docqa/internal/repositories/repomanager"
)

// Admin offers read-only listings of everything in the store.
type Admin struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewAdmin(db *sql.DB, m repomanager.RepositoryManager) *Admin {
	return &Admin{db: db, repomanager: m}
}

// ListUsers returns every account with its stored secret as persisted.
func (a *Admin) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := a.repomanager.Users(a.db).List(ctx)
	if err != nil {
		return nil, storeErr(fmt.Errorf("error listing users: %w", err))
	}
	return users, nil
}

func (a *Admin) ListDocuments(ctx context.Context) ([]models.DocumentSummary, error) {
	docs, err := a.repomanager.Documents(a.db).List(ctx)
	if err != nil {
		return nil, storeErr(fmt.Errorf("error listing documents: %w", err))
	}
	return docs, nil
}
