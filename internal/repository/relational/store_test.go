// internal/repository/relational/store_test.go
package relational

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"bank-console/internal/domain"
	"bank-console/internal/repository"
	"bank-console/internal/repository/storetest"
	"bank-console/internal/util"
	"bank-console/pkg/db"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(db.OpenTestSQLite(t), "sqlite test")
}

func TestStoreConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) repository.Store {
		return newTestStore(t)
	})
}

func TestWriteRollsBackOnFailure(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := domain.NewUserProfile(0, "alice", "pw", domain.RoleCustomer)
	require.NoError(t, s.Write(ctx, alice))

	// Account 0 names an owner without a profile; the foreign key fails
	// after the account row itself went in.
	orphan := domain.NewPendingAccount(0, 42)
	renamed := alice
	renamed.Password = "new"
	err := s.Write(ctx, renamed, orphan)
	require.Error(t, err)
	assert.True(t, util.IsStoreUnavailable(err))

	_, err = s.ReadBankAccount(ctx, 0)
	assert.ErrorIs(t, err, util.ErrNotFound)

	got, err := s.ReadUserProfile(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "pw", got.Password)
}

func TestOwnershipMismatchRejected(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := domain.NewUserProfile(0, "alice", "pw", domain.RoleCustomer)
	acc := domain.NewPendingAccount(3, alice.ID)

	// Account names alice, but her profile has no back reference.
	err := s.Write(ctx, alice, acc)
	require.Error(t, err)
	assert.True(t, util.IsStoreUnavailable(err))
	assert.ErrorIs(t, err, util.ErrOwnershipMismatch)

	// Profile claims an account whose owners do not include her.
	alice.AddOwnedAccount(5)
	err = s.Write(ctx, alice)
	assert.ErrorIs(t, err, util.ErrOwnershipMismatch)

	profiles, err := s.ReadAllUserProfiles(ctx)
	require.NoError(t, err)
	assert.Empty(t, profiles)
	accounts, err := s.ReadAllBankAccounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)

	alice.OwnedAccounts = []int64{3}
	require.NoError(t, s.Write(ctx, alice, acc))
	got, err := s.ReadUserProfile(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice, got)
}

func TestFreshInsertNeverOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := domain.NewUserProfile(0, "alice", "pw", domain.RoleCustomer)
	acc := domain.NewPendingAccount(0, alice.ID)
	acc.Funds = 700
	alice.AddOwnedAccount(acc.ID)
	require.NoError(t, s.Write(ctx, alice, acc))

	mallory := domain.NewUserProfile(0, "mallory", "pw", domain.RoleAdmin)
	err := s.Write(ctx, repository.Fresh(mallory))
	require.Error(t, err)
	assert.True(t, util.IsStoreUnavailable(err))
	assert.ErrorIs(t, err, util.ErrIDCollision)

	emptied := acc
	emptied.Funds = 0
	err = s.Write(ctx, repository.Fresh(emptied), alice)
	assert.ErrorIs(t, err, util.ErrIDCollision)

	got, err := s.ReadUserProfile(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	gotAcc, err := s.ReadBankAccount(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(700), gotAcc.Funds)
}

func TestKeyViolationMapping(t *testing.T) {
	profile := domain.NewUserProfile(4, "alice", "pw", domain.RoleCustomer)
	tr := domain.NewTransactionRecord(domain.TransactionFundsDeposited)
	tr.ID = 9

	tests := []struct {
		name string
		rec  domain.Record
		err  error
		want error
	}{
		{
			name: "postgres primary key",
			rec:  profile,
			err:  &pq.Error{Code: "23505", Constraint: "user_profile_pkey"},
			want: util.ErrIDCollision,
		},
		{
			name: "postgres username",
			rec:  profile,
			err:  fmt.Errorf("exec: %w", &pq.Error{Code: "23505", Constraint: "user_profile_username_key"}),
			want: util.ErrUsernameTaken,
		},
		{
			name: "sqlite primary key",
			rec:  tr,
			err:  sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey},
			want: util.ErrIDCollision,
		},
		{
			name: "sqlite username",
			rec:  profile,
			err:  sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique},
			want: util.ErrUsernameTaken,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, keyError(tt.rec, tt.err), tt.want)
		})
	}

	foreignKey := &pq.Error{Code: "23503"}
	assert.Same(t, foreignKey, keyError(profile, foreignKey))
	plain := errors.New("disk I/O error")
	assert.Equal(t, plain, keyError(tr, plain))
}

func TestCorruptEnumValue(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, domain.NewUserProfile(0, "alice", "pw", domain.RoleCustomer)))
	_, err := s.conn.ExecContext(ctx, `PRAGMA ignore_check_constraints = ON`)
	require.NoError(t, err)
	_, err = s.conn.ExecContext(ctx, `UPDATE user_profile SET role = 'OVERLORD' WHERE user_id = 0`)
	require.NoError(t, err)

	_, err = s.ReadUserProfile(ctx, 0)
	assert.True(t, util.IsStoreUnavailable(err))
	assert.ErrorIs(t, err, util.ErrCorruptRecord)
}

func TestCorruptTransactionKind(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tr := domain.NewTransactionRecord(domain.TransactionFundsDeposited)
	tr.ID, tr.Time, tr.ActingUser = 0, "2026-01-02T03:04:05Z", 0
	require.NoError(t, s.Write(ctx, repository.Fresh(tr)))
	_, err := s.conn.ExecContext(ctx, `UPDATE transaction_record SET kind = 'FUNDS_STOLEN' WHERE trans_id = 0`)
	require.NoError(t, err)

	_, err = s.ReadTransactionRecord(ctx, 0)
	assert.True(t, util.IsStoreUnavailable(err))
	assert.ErrorIs(t, err, util.ErrCorruptRecord)

	_, err = s.ReadAllTransactionRecords(ctx)
	assert.True(t, util.IsStoreUnavailable(err))
	assert.ErrorIs(t, err, util.ErrCorruptRecord)
}

func TestBeginFailureIsUnavailable(t *testing.T) {
	s := newTestStore(t)
	s.beginTx = func(ctx context.Context, _ db.DBTxBeginner) (db.TxController, error) {
		return nil, errors.New("connection reset")
	}

	err := s.Write(context.Background(), domain.NewUserProfile(0, "alice", "pw", domain.RoleCustomer))
	require.Error(t, err)
	assert.True(t, util.IsStoreUnavailable(err))
	assert.Contains(t, err.Error(), "connection reset")
}

func TestClosedConnection(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Close())

	_, err := s.HighestUserID(context.Background())
	assert.True(t, util.IsStoreUnavailable(err))
}
