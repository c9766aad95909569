package documents

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docqa/internal/common"
	"github.com/dmitrijs2005/docqa/internal/dbx"
	"github.com/dmitrijs2005/docqa/internal/models"
)

func mapCreateError(err error) error {
	if dbx.IsForeignKeyViolation(err) {
		return fmt.Errorf("unknown owner: %w", common.ErrorNotFound)
	}
	return fmt.Errorf("db error: %w", err)
}

func mapGetError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}

type scanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanSummaries(rows scanner) ([]models.DocumentSummary, error) {
	var result []models.DocumentSummary
	for rows.Next() {
		var s models.DocumentSummary
		if err := rows.Scan(&s.ID, &s.Owner, &s.Name, &s.TextLength); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate document rows: %w", err)
	}
	return result, nil
}
