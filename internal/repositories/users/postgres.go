package users

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

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) error {
	query :=
		`INSERT INTO users (identity, secret)
		 VALUES ($1, $2)
		 `

	_, err := r.db.ExecContext(ctx, query, user.Identity, user.Secret)
	if err != nil {
		return mapCreateError(err)
	}
	return nil
}

func (r *PostgresRepository) GetByIdentity(ctx context.Context, identity string) (*models.User, error) {
	query :=
		`SELECT identity, secret FROM users
		 WHERE identity = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, identity).Scan(&user.Identity, &user.Secret)
	if err != nil {
		return nil, mapGetError(err)
	}
	return user, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, identity string) (bool, error) {
	query :=
		`SELECT EXISTS (SELECT 1 FROM users WHERE identity = $1)
		 `

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, identity).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.User, error) {
	query :=
		`SELECT identity, secret FROM users
		 ORDER BY identity
		 `

	rows, err := r.db.QueryContext(ctx, query)
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
