package documents

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/docqa/internal/dbx"
	"github.com/dmitrijs2005/docqa/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, doc *models.Document) (*models.Document, error) {
	query :=
		`INSERT INTO documents (owner_identity, document_name, document_text)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, doc.Owner, doc.Name, doc.Text).Scan(&doc.ID)
	if err != nil {
		return nil, mapCreateError(err)
	}
	return doc, nil
}

func (r *PostgresRepository) FindOldest(ctx context.Context, owner, name string) (*models.Document, error) {
	query :=
		`SELECT id, owner_identity, document_name, document_text FROM documents
		 WHERE owner_identity = $1 AND document_name = $2
		 ORDER BY id LIMIT 1
		 `

	doc := &models.Document{}
	err := r.db.QueryRowContext(ctx, query, owner, name).Scan(&doc.ID, &doc.Owner, &doc.Name, &doc.Text)
	if err != nil {
		return nil, mapGetError(err)
	}
	return doc, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.DocumentSummary, error) {
	query :=
		`SELECT id, owner_identity, document_name, char_length(document_text) FROM documents
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}
