// internal/domain/transaction.go
package domain

import (
	"fmt"
	"strings"
)

// TransactionKind defines what a transaction record documents.
type TransactionKind string

const (
	TransactionUserRegistered      TransactionKind = "USER_REGISTERED"
	TransactionAccountRegistered   TransactionKind = "ACCOUNT_REGISTERED"
	TransactionAccountApproved     TransactionKind = "ACCOUNT_APPROVED"
	TransactionAccountClosed       TransactionKind = "ACCOUNT_CLOSED"
	TransactionAccountOwnerAdded   TransactionKind = "ACCOUNT_OWNER_ADDED"
	TransactionAccountOwnerRemoved TransactionKind = "ACCOUNT_OWNER_REMOVED"
	TransactionFundsDeposited      TransactionKind = "FUNDS_DEPOSITED"
	TransactionFundsWithdrawn      TransactionKind = "FUNDS_WITHDRAWN"
	TransactionFundsTransfered     TransactionKind = "FUNDS_TRANSFERED"
	TransactionNone                TransactionKind = "NONE"
)

var transactionKinds = []TransactionKind{
	TransactionUserRegistered,
	TransactionAccountRegistered,
	TransactionAccountApproved,
	TransactionAccountClosed,
	TransactionAccountOwnerAdded,
	TransactionAccountOwnerRemoved,
	TransactionFundsDeposited,
	TransactionFundsWithdrawn,
	TransactionFundsTransfered,
	TransactionNone,
}

// ParseTransactionKind converts a stored kind name into a TransactionKind.
func ParseTransactionKind(s string) (TransactionKind, error) {
	want := TransactionKind(strings.ToUpper(s))
	for _, k := range transactionKinds {
		if k == want {
			return k, nil
		}
	}
	return TransactionNone, fmt.Errorf("unknown transaction kind %q", s)
}

// TransactionRecord is an append-only audit entry.
type TransactionRecord struct {
	ID                 int64           `db:"trans_id" yaml:"id"`
	Time               string          `db:"ts" yaml:"time"` // Opaque timestamp
	Kind               TransactionKind `db:"kind" yaml:"kind"`
	ActingUser         int64           `db:"acting_user" yaml:"acting_user"`
	SourceAccount      int64           `db:"source_account" yaml:"source_account"`           // NoID when unused
	DestinationAccount int64           `db:"destination_account" yaml:"destination_account"` // NoID when unused
	MoneyAmount        int64           `db:"money_amount" yaml:"money_amount"`               // Cents, NoID when unused
}

// NewTransactionRecord creates a record of the given kind with every
// optional field unset. Id, time and acting user are filled in by the caller.
func NewTransactionRecord(kind TransactionKind) TransactionRecord {
	return TransactionRecord{
		ID:                 NoID,
		Kind:               kind,
		ActingUser:         NoID,
		SourceAccount:      NoID,
		DestinationAccount: NoID,
		MoneyAmount:        NoID,
	}
}

// Touches reports whether the record names accountID as source or destination.
func (t TransactionRecord) Touches(accountID int64) bool {
	return t.SourceAccount == accountID || t.DestinationAccount == accountID
}

func (t TransactionRecord) RecordKind() RecordKind { return KindTransactionRecord }
func (t TransactionRecord) RecordID() int64        { return t.ID }
