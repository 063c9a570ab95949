package admins

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/moviebase/mediavault/internal/common"
	"github.com/moviebase/mediavault/internal/dbx"
	"github.com/moviebase/mediavault/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	query :=
		`SELECT id, username, role, created_at FROM admins
		 WHERE id = $1
		 `

	admin := &models.Admin{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&admin.ID, &admin.Username, &admin.Role, &admin.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return admin, nil
}

func (r *PostgresRepository) GetRole(ctx context.Context, id string) (string, error) {
	query :=
		`SELECT role FROM admins
		 WHERE id = $1
		 `

	var role string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&role)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}

	return role, nil
}
