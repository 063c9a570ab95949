package admins

import (
	"context"

	"github.com/moviebase/mediavault/internal/server/models"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	GetRole(ctx context.Context, id string) (string, error)
}
