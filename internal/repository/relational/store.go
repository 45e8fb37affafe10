// internal/repository/relational/store.go
package relational

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"bank-console/internal/domain"
	"bank-console/internal/repository"
	"bank-console/internal/util"
	"bank-console/pkg/db"

	"github.com/jmoiron/sqlx"
)

// Store implements repository.Store on PostgreSQL or SQLite through sqlx.
// Queries use '?' placeholders and are rebound for the connection's driver.
type Store struct {
	conn         *sqlx.DB
	name         string
	profiles     profileQueries
	accounts     accountQueries
	transactions transactionQueries
	beginTx      db.BeginTxFunc
	commitTx     db.CommitTxFunc
	rollbackTx   db.RollbackTxFunc
}

var _ repository.Store = (*Store)(nil)

// New wraps an open, migrated connection. The store owns conn from then on.
func New(conn *sqlx.DB, name string) *Store {
	return &Store{
		conn:       conn,
		name:       name,
		beginTx:    db.BeginTx,
		commitTx:   db.CommitTx,
		rollbackTx: db.RollbackTx,
	}
}

// Name describes the backing database.
func (s *Store) Name() string { return s.name }

// Close closes the connection pool.
func (s *Store) Close() error { return s.conn.Close() }

// ReadUserProfile retrieves a profile with its owned accounts.
func (s *Store) ReadUserProfile(ctx context.Context, id int64) (domain.UserProfile, error) {
	p, err := s.profiles.getByID(ctx, s.conn, id)
	return p, wrap("read user profile", err)
}

// ReadUserProfileByUsername retrieves a profile by username.
func (s *Store) ReadUserProfileByUsername(ctx context.Context, username string) (domain.UserProfile, error) {
	p, err := s.profiles.getByUsername(ctx, s.conn, username)
	return p, wrap("read user profile by username", err)
}

// ReadAllUserProfiles returns every profile ordered by id.
func (s *Store) ReadAllUserProfiles(ctx context.Context) ([]domain.UserProfile, error) {
	profiles, err := s.profiles.list(ctx, s.conn, "")
	return profiles, wrap("read all user profiles", err)
}

// HighestUserID returns the largest profile id, or -1.
func (s *Store) HighestUserID(ctx context.Context) (int64, error) {
	id, err := s.profiles.highestID(ctx, s.conn)
	return id, wrap("highest user id", err)
}

// IsUsernameFree reports whether no profile uses username.
func (s *Store) IsUsernameFree(ctx context.Context, username string) (bool, error) {
	n, err := s.profiles.usernameHolders(ctx, s.conn, username, domain.NoID)
	if err != nil {
		return false, wrap("is username free", err)
	}
	return n == 0, nil
}

// ReadBankAccount retrieves an account with its owners.
func (s *Store) ReadBankAccount(ctx context.Context, id int64) (domain.BankAccount, error) {
	a, err := s.accounts.getByID(ctx, s.conn, id)
	return a, wrap("read bank account", err)
}

// ReadAllBankAccounts returns every account ordered by id.
func (s *Store) ReadAllBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	accounts, err := s.accounts.list(ctx, s.conn, "")
	return accounts, wrap("read all bank accounts", err)
}

// HighestAccountID returns the largest account id, or -1.
func (s *Store) HighestAccountID(ctx context.Context) (int64, error) {
	id, err := s.accounts.highestID(ctx, s.conn)
	return id, wrap("highest account id", err)
}

// ReadTransactionRecord retrieves one audit record.
func (s *Store) ReadTransactionRecord(ctx context.Context, id int64) (domain.TransactionRecord, error) {
	tr, err := s.transactions.getByID(ctx, s.conn, id)
	return tr, wrap("read transaction record", err)
}

// ReadAllTransactionRecords returns the audit trail ordered by id.
func (s *Store) ReadAllTransactionRecords(ctx context.Context) ([]domain.TransactionRecord, error) {
	records, err := s.transactions.list(ctx, s.conn, "")
	return records, wrap("read all transaction records", err)
}

// ReadTransactionsByActingUser returns records triggered by userID.
func (s *Store) ReadTransactionsByActingUser(ctx context.Context, userID int64) ([]domain.TransactionRecord, error) {
	records, err := s.transactions.list(ctx, s.conn, ` WHERE acting_user = ?`, userID)
	return records, wrap("read transactions by acting user", err)
}

// ReadTransactionsByAccount returns records naming accountID as source or destination.
func (s *Store) ReadTransactionsByAccount(ctx context.Context, accountID int64) ([]domain.TransactionRecord, error) {
	records, err := s.transactions.list(ctx, s.conn,
		` WHERE source_account = ? OR destination_account = ?`, accountID, accountID)
	return records, wrap("read transactions by account", err)
}

// HighestTransactionID returns the largest record id, or -1.
func (s *Store) HighestTransactionID(ctx context.Context) (int64, error) {
	id, err := s.transactions.highestID(ctx, s.conn)
	return id, wrap("highest transaction id", err)
}

// Write applies every record inside one database transaction.
func (s *Store) Write(ctx context.Context, records ...domain.Record) error {
	if len(records) == 0 {
		return nil
	}
	pending, err := repository.Prepare(records)
	if err != nil {
		return err
	}

	txController, err := s.beginTx(ctx, s.conn)
	if err != nil {
		return util.Unavailable("write", fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return util.Unavailable("write", fmt.Errorf("transaction controller does not implement DBExecutor"))
	}

	for _, p := range pending {
		if err := s.apply(ctx, txExecutor, p); err != nil {
			return util.Unavailable("write", err)
		}
	}
	if err := s.checkOwnership(ctx, txExecutor, pending); err != nil {
		return util.Unavailable("write", err)
	}

	if err := s.commitTx(txController); err != nil {
		return util.Unavailable("write", fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}

// apply inserts fresh records, so a taken id fails on the key instead of
// overwriting, and upserts the rest.
func (s *Store) apply(ctx context.Context, q repository.DBExecutor, p repository.Pending) error {
	switch rec := p.Record.(type) {
	case domain.UserProfile:
		n, err := s.profiles.usernameHolders(ctx, q, rec.Username, rec.ID)
		if err != nil {
			return fmt.Errorf("check username %q: %w", rec.Username, err)
		}
		if n > 0 {
			return fmt.Errorf("%w: %q", util.ErrUsernameTaken, rec.Username)
		}
		write := s.profiles.upsert
		if p.Fresh {
			write = s.profiles.insert
		}
		if err := write(ctx, q, rec); err != nil {
			return fmt.Errorf("write profile %d: %w", rec.ID, keyError(rec, err))
		}
	case domain.BankAccount:
		write := s.accounts.upsert
		if p.Fresh {
			write = s.accounts.insert
		}
		if err := write(ctx, q, rec); err != nil {
			return keyError(rec, err)
		}
	case domain.TransactionRecord:
		write := s.transactions.upsert
		if p.Fresh {
			write = s.transactions.insert
		}
		if err := write(ctx, q, rec); err != nil {
			return fmt.Errorf("write transaction %d: %w", rec.ID, keyError(rec, err))
		}
	}
	return nil
}

// checkOwnership rejects a written profile whose owned accounts differ from
// the owners recorded on the account side.
func (s *Store) checkOwnership(ctx context.Context, q repository.DBExecutor, pending []repository.Pending) error {
	for _, p := range pending {
		profile, ok := p.Record.(domain.UserProfile)
		if !ok {
			continue
		}
		stored, err := s.profiles.ownedAccounts(ctx, q, profile.ID)
		if err != nil {
			return fmt.Errorf("read owned accounts of profile %d: %w", profile.ID, err)
		}
		claimed := slices.Sorted(slices.Values(profile.OwnedAccounts))
		if !slices.Equal(claimed, stored) {
			return fmt.Errorf("%w: profile %d lists %v, accounts name it on %v",
				util.ErrOwnershipMismatch, profile.ID, claimed, stored)
		}
	}
	return nil
}

// wrap keeps util.ErrNotFound as is and turns anything else into StoreUnavailable.
func wrap(op string, err error) error {
	if err == nil || errors.Is(err, util.ErrNotFound) {
		return err
	}
	return util.Unavailable(op, err)
}
