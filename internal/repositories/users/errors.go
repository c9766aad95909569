package users

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docqa/internal/common"
	"github.com/dmitrijs2005/docqa/internal/dbx"
)

func mapCreateError(err error) error {
	if dbx.IsUniqueViolation(err) {
		return common.ErrorAlreadyExists
	}
	return fmt.Errorf("db error: %w", err)
}

func mapGetError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}
