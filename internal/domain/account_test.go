// internal/domain/account_test.go
package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBankAccountOwners(t *testing.T) {
	t.Run("new account is pending single with one owner", func(t *testing.T) {
		a := NewPendingAccount(4, 7)
		assert.Equal(t, AccountStatusPending, a.Status)
		assert.Equal(t, AccountTypeSingle, a.Type)
		assert.Equal(t, []int64{7}, a.Owners)
		assert.Zero(t, a.Funds)
	})

	t.Run("adding owners keeps them sorted and flips to joint", func(t *testing.T) {
		a := NewPendingAccount(4, 7)
		a.AddOwner(2)
		a.AddOwner(2)
		assert.Equal(t, []int64{2, 7}, a.Owners)
		assert.Equal(t, AccountTypeJoint, a.Type)
	})

	t.Run("removing back to one owner makes it single", func(t *testing.T) {
		a := NewPendingAccount(4, 7)
		a.AddOwner(9)
		a.RemoveOwner(7)
		assert.Equal(t, []int64{9}, a.Owners)
		assert.Equal(t, AccountTypeSingle, a.Type)
	})

	t.Run("mutating a copy leaves the original alone", func(t *testing.T) {
		a := NewPendingAccount(4, 7)
		b := a
		b.AddOwner(8)
		b.RemoveOwner(7)
		assert.Equal(t, []int64{7}, a.Owners)
		assert.Equal(t, []int64{8}, b.Owners)
	})

	t.Run("close zeroes funds", func(t *testing.T) {
		a := NewPendingAccount(4, 7)
		a.Status = AccountStatusOpen
		a.Funds = 500
		a.Close()
		assert.Equal(t, AccountStatusClosed, a.Status)
		assert.Zero(t, a.Funds)
	})
}

func TestParseEnums(t *testing.T) {
	st, err := ParseAccountStatus("open")
	assert.NoError(t, err)
	assert.Equal(t, AccountStatusOpen, st)

	_, err = ParseAccountStatus("ajar")
	assert.Error(t, err)

	typ, err := ParseAccountType("JOINT")
	assert.NoError(t, err)
	assert.Equal(t, AccountTypeJoint, typ)

	role, err := ParseRole("Employee")
	assert.NoError(t, err)
	assert.Equal(t, RoleEmployee, role)

	kind, err := ParseTransactionKind("FUNDS_TRANSFERED")
	assert.NoError(t, err)
	assert.Equal(t, TransactionFundsTransfered, kind)

	_, err = ParseTransactionKind("FUNDS_STOLEN")
	assert.Error(t, err)
}

func TestValidCredential(t *testing.T) {
	assert.True(t, ValidCredential("alice"))
	assert.False(t, ValidCredential(""))
	assert.False(t, ValidCredential("al ice"))
	assert.False(t, ValidCredential("alice\t"))
}
