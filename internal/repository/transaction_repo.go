// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"bank-console/internal/domain"
)

// TransactionRepository defines the read operations on the audit trail.
// Every sequence is ordered by id and is empty, not nil-error, when nothing matches.
type TransactionRepository interface {
	ReadTransactionRecord(ctx context.Context, id int64) (domain.TransactionRecord, error)
	ReadAllTransactionRecords(ctx context.Context) ([]domain.TransactionRecord, error)
	// ReadTransactionsByActingUser returns records triggered by userID.
	ReadTransactionsByActingUser(ctx context.Context, userID int64) ([]domain.TransactionRecord, error)
	// ReadTransactionsByAccount returns records naming accountID as source or destination.
	ReadTransactionsByAccount(ctx context.Context, accountID int64) ([]domain.TransactionRecord, error)
	// HighestTransactionID returns the largest record id in use, or -1.
	HighestTransactionID(ctx context.Context) (int64, error)
}
