// Package dbx provides the tiny DB abstraction shared by SQL repositories:
// an interface (DBTX) implemented by both *sql.DB and *sql.Tx, so a
// repository can run either on the pool or inside a caller's transaction.
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

// Pinger is implemented by *sql.DB but not by *sql.Tx.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Ping checks connectivity when db supports it. A transaction handle is
// considered alive.
func Ping(ctx context.Context, db DBTX) error {
	if p, ok := db.(Pinger); ok {
		return p.PingContext(ctx)
	}
	return nil
}
