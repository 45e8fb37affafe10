// internal/bankio/io.go

// Package bankio is the console's input/output port: it turns operator input
// into requests and renders messages and records.
package bankio

import (
	"context"

	"bank-console/internal/domain"
)

// IO produces requests and consumes output for the dispatch engine.
type IO interface {
	// Prompt offers menu and returns the chosen request with its parameters.
	// It returns io.EOF once input is exhausted.
	Prompt(ctx context.Context, menu []domain.RequestKind) (domain.Request, error)
	DisplayText(text string)
	// DisplayBanner shows text framed, for the session start.
	DisplayBanner(text string)
	DisplayProfiles(profiles []domain.UserProfile)
	DisplayAccounts(accounts []domain.BankAccount)
	DisplayTransactions(records []domain.TransactionRecord)
}
