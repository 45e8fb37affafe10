// internal/repository/store_test.go
package repository

import (
	"testing"

	"bank-console/internal/domain"
	"bank-console/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFresh(t *testing.T) {
	p := domain.NewUserProfile(3, "carol", "pw", domain.RoleCustomer)

	rec, fresh := Unwrap(Fresh(p))
	assert.True(t, fresh)
	assert.Equal(t, p, rec)

	rec, fresh = Unwrap(Fresh(Fresh(p)))
	assert.True(t, fresh)
	assert.Equal(t, p, rec)

	rec, fresh = Unwrap(p)
	assert.False(t, fresh)
	assert.Equal(t, p, rec)
}

func TestPrepare(t *testing.T) {
	t.Run("orders by kind and keeps call order within a kind", func(t *testing.T) {
		tr := domain.NewTransactionRecord(domain.TransactionAccountRegistered)
		tr.ID = 0
		acc := domain.NewPendingAccount(5, 1)
		p1 := domain.NewUserProfile(1, "a", "pw", domain.RoleCustomer)
		p0 := domain.NewUserProfile(0, "b", "pw", domain.RoleCustomer)

		got, err := Prepare([]domain.Record{Fresh(tr), acc, p1, &p0})
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, p1, got[0].Record)
		assert.Equal(t, p0, got[1].Record)
		assert.Equal(t, acc, got[2].Record)
		assert.Equal(t, tr, got[3].Record)
		assert.True(t, got[3].Fresh)
		assert.False(t, got[0].Fresh)
	})

	t.Run("duplicate keeps the last value", func(t *testing.T) {
		a := domain.NewPendingAccount(5, 1)
		b := a.Clone()
		b.Funds = 10

		got, err := Prepare([]domain.Record{Fresh(a), b})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, b, got[0].Record)
		assert.True(t, got[0].Fresh)
	})

	t.Run("negative id is refused", func(t *testing.T) {
		_, err := Prepare([]domain.Record{domain.NoUser()})
		assert.True(t, util.IsStoreUnavailable(err))
	})
}
