// Package documents persists extracted document text keyed by owner and
// document name. Several records may exist for the same pair; lookups
// return the oldest one.
package documents

import (
	"context"

	"github.com/dmitrijs2005/docqa/internal/models"
)

type Repository interface {
	// Create inserts doc and sets doc.ID.
	Create(ctx context.Context, doc *models.Document) (*models.Document, error)
	// FindOldest returns the first record stored for (owner, name) or
	// common.ErrorNotFound.
	FindOldest(ctx context.Context, owner, name string) (*models.Document, error)
	List(ctx context.Context) ([]models.DocumentSummary, error)
}
