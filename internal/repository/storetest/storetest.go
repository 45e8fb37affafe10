// internal/repository/storetest/storetest.go

// Package storetest holds the behaviour every repository.Store must share.
// Backend packages call Run from their own tests.
package storetest

import (
	"context"
	"testing"

	"bank-console/internal/domain"
	"bank-console/internal/repository"
	"bank-console/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty store scoped to t.
type Factory func(t *testing.T) repository.Store

// Run executes the conformance suite against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("EmptyStore", func(t *testing.T) { testEmptyStore(t, newStore(t)) })
	t.Run("RoundTrip", func(t *testing.T) { testRoundTrip(t, newStore(t)) })
	t.Run("Replace", func(t *testing.T) { testReplace(t, newStore(t)) })
	t.Run("OwnershipBothSides", func(t *testing.T) { testOwnershipBothSides(t, newStore(t)) })
	t.Run("FreshCollision", func(t *testing.T) { testFreshCollision(t, newStore(t)) })
	t.Run("UsernameUniqueness", func(t *testing.T) { testUsernameUniqueness(t, newStore(t)) })
	t.Run("TransactionQueries", func(t *testing.T) { testTransactionQueries(t, newStore(t)) })
	t.Run("HighestIDs", func(t *testing.T) { testHighestIDs(t, newStore(t)) })
}

func testEmptyStore(t *testing.T, s repository.Store) {
	ctx := context.Background()

	for name, highest := range map[string]func(context.Context) (int64, error){
		"user":        s.HighestUserID,
		"account":     s.HighestAccountID,
		"transaction": s.HighestTransactionID,
	} {
		id, err := highest(ctx)
		require.NoError(t, err, name)
		assert.Equal(t, int64(-1), id, name)
	}

	_, err := s.ReadUserProfile(ctx, 0)
	assert.ErrorIs(t, err, util.ErrNotFound)
	_, err = s.ReadUserProfileByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, util.ErrNotFound)
	_, err = s.ReadBankAccount(ctx, 0)
	assert.ErrorIs(t, err, util.ErrNotFound)
	_, err = s.ReadTransactionRecord(ctx, 0)
	assert.ErrorIs(t, err, util.ErrNotFound)

	profiles, err := s.ReadAllUserProfiles(ctx)
	require.NoError(t, err)
	assert.Empty(t, profiles)
	accounts, err := s.ReadAllBankAccounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)
	records, err := s.ReadAllTransactionRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	free, err := s.IsUsernameFree(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, free)

	assert.NoError(t, s.Write(ctx))
}

// sample builds a consistent profile/account pair plus one audit record.
func sample() (domain.UserProfile, domain.BankAccount, domain.TransactionRecord) {
	p := domain.NewUserProfile(0, "alice", "pw", domain.RoleCustomer)
	a := domain.NewPendingAccount(0, p.ID)
	a.Status = domain.AccountStatusOpen
	a.Funds = 12345
	p.AddOwnedAccount(a.ID)

	tr := domain.NewTransactionRecord(domain.TransactionFundsDeposited)
	tr.ID = 0
	tr.Time = "2026-01-02T03:04:05Z"
	tr.ActingUser = p.ID
	tr.DestinationAccount = a.ID
	tr.MoneyAmount = 12345
	return p, a, tr
}

func testRoundTrip(t *testing.T, s repository.Store) {
	ctx := context.Background()
	p, a, tr := sample()
	admin := domain.NewUserProfile(999, "admin", "admin", domain.RoleAdmin)
	staff := domain.NewUserProfile(7, "emp", "emp", domain.RoleEmployee)

	require.NoError(t, s.Write(ctx, repository.Fresh(p), repository.Fresh(a), repository.Fresh(tr), admin, staff))

	gotP, err := s.ReadUserProfile(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, gotP)

	byName, err := s.ReadUserProfileByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, p, byName)

	gotAdmin, err := s.ReadUserProfile(ctx, 999)
	require.NoError(t, err)
	assert.Equal(t, admin, gotAdmin)

	gotStaff, err := s.ReadUserProfile(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEmployee, gotStaff.Role)

	gotA, err := s.ReadBankAccount(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, gotA)

	gotT, err := s.ReadTransactionRecord(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, tr, gotT)

	profiles, err := s.ReadAllUserProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 3)
	assert.Equal(t, []int64{0, 7, 999}, []int64{profiles[0].ID, profiles[1].ID, profiles[2].ID})

	free, err := s.IsUsernameFree(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, free)
}

func testReplace(t *testing.T, s repository.Store) {
	ctx := context.Background()
	p, a, _ := sample()
	require.NoError(t, s.Write(ctx, p, a))

	a.Funds = 1
	p.Password = "changed"
	require.NoError(t, s.Write(ctx, a, p))

	gotA, err := s.ReadBankAccount(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gotA.Funds)

	gotP, err := s.ReadUserProfile(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "changed", gotP.Password)

	accounts, err := s.ReadAllBankAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func testOwnershipBothSides(t *testing.T, s repository.Store) {
	ctx := context.Background()
	alice, acc, _ := sample()
	bob := domain.NewUserProfile(1, "bob", "pw", domain.RoleCustomer)
	require.NoError(t, s.Write(ctx, alice, bob, acc))

	acc.AddOwner(bob.ID)
	bob.AddOwnedAccount(acc.ID)
	require.NoError(t, s.Write(ctx, acc, bob))
	assertConsistent(t, s)

	gotAcc, err := s.ReadBankAccount(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1}, gotAcc.Owners)
	assert.Equal(t, domain.AccountTypeJoint, gotAcc.Type)

	acc.RemoveOwner(alice.ID)
	alice.RemoveOwnedAccount(acc.ID)
	require.NoError(t, s.Write(ctx, alice, acc))
	assertConsistent(t, s)

	gotAlice, err := s.ReadUserProfile(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, gotAlice.OwnedAccounts)

	gotBob, err := s.ReadUserProfile(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{0}, gotBob.OwnedAccounts)
}

func testFreshCollision(t *testing.T, s repository.Store) {
	ctx := context.Background()
	p, a, tr := sample()
	require.NoError(t, s.Write(ctx, p, a, tr))

	changed := p.Clone()
	changed.Password = "should-not-land"
	dup := tr
	dup.Kind = domain.TransactionFundsWithdrawn

	err := s.Write(ctx, changed, repository.Fresh(dup))
	require.Error(t, err)
	assert.True(t, util.IsStoreUnavailable(err))
	assert.ErrorIs(t, err, util.ErrIDCollision)

	gotP, err := s.ReadUserProfile(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "pw", gotP.Password)

	gotT, err := s.ReadTransactionRecord(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionFundsDeposited, gotT.Kind)
}

func testUsernameUniqueness(t *testing.T, s repository.Store) {
	ctx := context.Background()
	p, a, _ := sample()
	require.NoError(t, s.Write(ctx, p, a))

	imposter := domain.NewUserProfile(1, p.Username, "other", domain.RoleCustomer)
	err := s.Write(ctx, imposter)
	require.Error(t, err)
	assert.True(t, util.IsStoreUnavailable(err))

	_, err = s.ReadUserProfile(ctx, 1)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func testTransactionQueries(t *testing.T, s repository.Store) {
	ctx := context.Background()
	alice, acc, _ := sample()
	bob := domain.NewUserProfile(1, "bob", "pw", domain.RoleCustomer)
	other := domain.NewPendingAccount(1, bob.ID)
	bob.AddOwnedAccount(other.ID)
	require.NoError(t, s.Write(ctx, alice, bob, acc, other))

	mk := func(id int64, kind domain.TransactionKind, actor, src, dst, amount int64) domain.TransactionRecord {
		tr := domain.NewTransactionRecord(kind)
		tr.ID, tr.Time, tr.ActingUser = id, "2026-01-02T03:04:05Z", actor
		tr.SourceAccount, tr.DestinationAccount, tr.MoneyAmount = src, dst, amount
		return tr
	}
	records := []domain.TransactionRecord{
		mk(2, domain.TransactionFundsTransfered, 0, 0, 1, 50),
		mk(0, domain.TransactionAccountRegistered, 0, -1, 0, -1),
		mk(1, domain.TransactionAccountRegistered, 1, -1, 1, -1),
		mk(3, domain.TransactionFundsWithdrawn, 1, 1, -1, 10),
	}
	for _, tr := range records {
		require.NoError(t, s.Write(ctx, repository.Fresh(tr)))
	}

	all, err := s.ReadAllTransactionRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 2, 3}, ids(all))

	byAlice, err := s.ReadTransactionsByActingUser(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 2}, ids(byAlice))

	byAccount1, err := s.ReadTransactionsByAccount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids(byAccount1))

	none, err := s.ReadTransactionsByActingUser(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, none)

	none, err = s.ReadTransactionsByAccount(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testHighestIDs(t *testing.T, s repository.Store) {
	ctx := context.Background()
	p, a, tr := sample()
	admin := domain.NewUserProfile(999, "admin", "admin", domain.RoleAdmin)
	a.ID = 4
	p.OwnedAccounts = []int64{4}
	a.Owners = []int64{p.ID}
	tr.ID = 9
	require.NoError(t, s.Write(ctx, p, admin, a, tr))

	uid, err := s.HighestUserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(999), uid)

	aid, err := s.HighestAccountID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), aid)

	tid, err := s.HighestTransactionID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(9), tid)
}

func assertConsistent(t *testing.T, s repository.Store) {
	t.Helper()
	ctx := context.Background()
	profiles, err := s.ReadAllUserProfiles(ctx)
	require.NoError(t, err)
	accounts, err := s.ReadAllBankAccounts(ctx)
	require.NoError(t, err)
	assert.NoError(t, domain.CheckConsistency(profiles, accounts))
}

func ids(records []domain.TransactionRecord) []int64 {
	out := make([]int64, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}
