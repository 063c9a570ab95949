// Package dbx provides the minimal DB abstraction shared by repositories:
// an interface implemented by both *sql.DB and *sql.Tx, so repositories can
// run inside or outside a transaction without caring which.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by our repos.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
