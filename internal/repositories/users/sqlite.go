package users

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

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (identity, secret) VALUES (?, ?)`,
		user.Identity, user.Secret)
	if err != nil {
		return mapCreateError(err)
	}
	return nil
}

func (r *SQLiteRepository) GetByIdentity(ctx context.Context, identity string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT identity, secret FROM users WHERE identity = ?`,
		identity).Scan(&user.Identity, &user.Secret)
	if err != nil {
		return nil, mapGetError(err)
	}
	return user, nil
}

func (r *SQLiteRepository) Exists(ctx context.Context, identity string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE identity = ?)`,
		identity).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT identity, secret FROM users ORDER BY identity`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.Identity, &u.Secret); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}
	return result, nil
}
