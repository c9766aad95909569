package documents

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/docqa/internal/dbx"
	"github.com/dmitrijs2005/docqa/internal/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, doc *models.Document) (*models.Document, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (owner_identity, document_name, document_text) VALUES (?, ?, ?)`,
		doc.Owner, doc.Name, doc.Text)
	if err != nil {
		return nil, mapCreateError(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	doc.ID = id
	return doc, nil
}

func (r *SQLiteRepository) FindOldest(ctx context.Context, owner, name string) (*models.Document, error) {
	doc := &models.Document{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, owner_identity, document_name, document_text FROM documents
		WHERE owner_identity = ? AND document_name = ?
		ORDER BY id LIMIT 1
	`, owner, name).Scan(&doc.ID, &doc.Owner, &doc.Name, &doc.Text)
	if err != nil {
		return nil, mapGetError(err)
	}
	return doc, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.DocumentSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_identity, document_name, length(document_text) FROM documents
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}
