// internal/repository/db_executor.go
package repository

import (
	"context"
	"database/sql"
)

// DBExecutor defines the common database operations needed by the relational store.
// Both *sqlx.DB and *sqlx.Tx implement these methods, so the same query code
// runs on a plain connection for reads and inside a transaction for writes.
type DBExecutor interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	Rebind(query string) string // Adapts '?' placeholders to the driver's bind style
}
