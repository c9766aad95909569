// Package users persists accounts. Identity is the primary key; a second
// insert for the same identity fails with common.ErrorAlreadyExists.
package users

import (
	"context"

	"github.com/dmitrijs2005/docqa/internal/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetByIdentity(ctx context.Context, identity string) (*models.User, error)
	Exists(ctx context.Context, identity string) (bool, error)
	List(ctx context.Context) ([]models.User, error)
}
