// internal/domain/account.go
package domain

import (
	"fmt"
	"strings"
)

// AccountStatus is the lifecycle state of a bank account.
type AccountStatus string

const (
	AccountStatusNone    AccountStatus = "NONE"
	AccountStatusPending AccountStatus = "PENDING"
	AccountStatusOpen    AccountStatus = "OPEN"
	AccountStatusClosed  AccountStatus = "CLOSED"
)

// ParseAccountStatus converts a stored status name into an AccountStatus.
func ParseAccountStatus(s string) (AccountStatus, error) {
	switch st := AccountStatus(strings.ToUpper(s)); st {
	case AccountStatusNone, AccountStatusPending, AccountStatusOpen, AccountStatusClosed:
		return st, nil
	}
	return AccountStatusNone, fmt.Errorf("unknown account status %q", s)
}

// AccountType tells single-owner accounts from joint ones.
type AccountType string

const (
	AccountTypeNone   AccountType = "NONE"
	AccountTypeSingle AccountType = "SINGLE"
	AccountTypeJoint  AccountType = "JOINT"
)

// ParseAccountType converts a stored type name into an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	switch t := AccountType(strings.ToUpper(s)); t {
	case AccountTypeNone, AccountTypeSingle, AccountTypeJoint:
		return t, nil
	}
	return AccountTypeNone, fmt.Errorf("unknown account type %q", s)
}

// BankAccount represents an account holding funds in cents.
type BankAccount struct {
	ID     int64         `db:"account_id" yaml:"id"`
	Status AccountStatus `db:"status" yaml:"status"`
	Type   AccountType   `db:"type" yaml:"type"`
	Funds  int64         `db:"funds" yaml:"funds"` // Cents, never negative
	Owners []int64       `db:"-" yaml:"owners"`    // Ascending, no duplicates
}

// NewPendingAccount creates an account awaiting approval, owned by ownerID.
func NewPendingAccount(id, ownerID int64) BankAccount {
	return BankAccount{
		ID:     id,
		Status: AccountStatusPending,
		Type:   AccountTypeSingle,
		Funds:  0,
		Owners: []int64{ownerID},
	}
}

// IsOpen reports whether the account accepts funds operations.
func (a BankAccount) IsOpen() bool {
	return a.Status == AccountStatusOpen
}

// HasOwner reports whether userID is an owner.
func (a BankAccount) HasOwner(userID int64) bool {
	return containsID(a.Owners, userID)
}

// AddOwner adds userID to the owners and recomputes the type.
func (a *BankAccount) AddOwner(userID int64) {
	a.Owners = insertID(a.Owners, userID)
	a.syncType()
}

// RemoveOwner drops userID from the owners and recomputes the type.
func (a *BankAccount) RemoveOwner(userID int64) {
	a.Owners = removeID(a.Owners, userID)
	a.syncType()
}

// Close zeroes the balance and marks the account closed.
func (a *BankAccount) Close() {
	a.Funds = 0
	a.Status = AccountStatusClosed
}

// Clone returns a copy that shares no slices with a.
func (a BankAccount) Clone() BankAccount {
	a.Owners = cloneIDs(a.Owners)
	return a
}

func (a BankAccount) RecordKind() RecordKind { return KindBankAccount }
func (a BankAccount) RecordID() int64        { return a.ID }

func (a *BankAccount) syncType() {
	switch n := len(a.Owners); {
	case n >= 2:
		a.Type = AccountTypeJoint
	case n == 1:
		a.Type = AccountTypeSingle
	default:
		a.Type = AccountTypeNone
	}
}
