package db

import (
	"context"
	"database/sql"

	"github.com/moviebase/mediavault/internal/server/repositories/admins"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Admins() admins.Repository
}
