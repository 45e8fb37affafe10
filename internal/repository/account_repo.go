// internal/repository/account_repo.go
package repository

import (
	"context"

	"bank-console/internal/domain"
)

// AccountRepository defines the read operations on bank accounts.
type AccountRepository interface {
	// ReadBankAccount retrieves an account by id, or util.ErrNotFound.
	ReadBankAccount(ctx context.Context, id int64) (domain.BankAccount, error)
	// ReadAllBankAccounts returns every account ordered by id.
	ReadAllBankAccounts(ctx context.Context) ([]domain.BankAccount, error)
	// HighestAccountID returns the largest account id in use, or -1.
	HighestAccountID(ctx context.Context) (int64, error)
}
