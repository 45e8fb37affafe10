// pkg/db/transaction_manager.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// TxController is the commit/rollback half of a transaction; *sqlx.Tx satisfies it.
type TxController interface {
	Commit() error
	Rollback() error
}

// DBTxBeginner opens transactions; *sqlx.DB satisfies it.
type DBTxBeginner interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// Function types so stores can swap the helpers out in tests.
type (
	BeginTxFunc    func(ctx context.Context, dbConn DBTxBeginner) (TxController, error)
	CommitTxFunc   func(tx TxController) error
	RollbackTxFunc func(tx TxController)
)

// BeginTx opens a read-write transaction with the driver's default isolation.
// The returned controller is the *sqlx.Tx itself, so callers may assert it
// to a query executor.
func BeginTx(ctx context.Context, dbConn DBTxBeginner) (TxController, error) {
	tx, err := dbConn.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// CommitTx commits tx.
func CommitTx(tx TxController) error {
	return tx.Commit()
}

// RollbackTx is meant to be deferred right after BeginTx. After a commit it
// does nothing; any other rollback failure is only logged.
func RollbackTx(tx TxController) {
	err := tx.Rollback()
	if err == nil || errors.Is(err, sql.ErrTxDone) {
		return
	}
	slog.Default().Warn("Transaction rollback failed", "error", err)
}
