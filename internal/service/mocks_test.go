// internal/service/mocks_test.go
package service

import (
	"context"

	"bank-console/internal/domain"
	"bank-console/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of repository.Store.
type MockStore struct {
	mock.Mock
}

var _ repository.Store = (*MockStore)(nil)

func (m *MockStore) ReadUserProfile(ctx context.Context, id int64) (domain.UserProfile, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.UserProfile), args.Error(1)
}

func (m *MockStore) ReadUserProfileByUsername(ctx context.Context, username string) (domain.UserProfile, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(domain.UserProfile), args.Error(1)
}

func (m *MockStore) ReadAllUserProfiles(ctx context.Context) ([]domain.UserProfile, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.UserProfile), args.Error(1)
}

func (m *MockStore) HighestUserID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) IsUsernameFree(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) ReadBankAccount(ctx context.Context, id int64) (domain.BankAccount, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.BankAccount), args.Error(1)
}

func (m *MockStore) ReadAllBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

func (m *MockStore) HighestAccountID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) ReadTransactionRecord(ctx context.Context, id int64) (domain.TransactionRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.TransactionRecord), args.Error(1)
}

func (m *MockStore) ReadAllTransactionRecords(ctx context.Context) ([]domain.TransactionRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.TransactionRecord), args.Error(1)
}

func (m *MockStore) ReadTransactionsByActingUser(ctx context.Context, userID int64) ([]domain.TransactionRecord, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.TransactionRecord), args.Error(1)
}

func (m *MockStore) ReadTransactionsByAccount(ctx context.Context, accountID int64) ([]domain.TransactionRecord, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).([]domain.TransactionRecord), args.Error(1)
}

func (m *MockStore) HighestTransactionID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) Write(ctx context.Context, records ...domain.Record) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockStore) Close() error {
	return m.Called().Error(0)
}

func (m *MockStore) Name() string {
	return m.Called().String(0)
}

// failingAuditStore delegates to a real store but refuses to persist
// transaction records.
type failingAuditStore struct {
	repository.Store
	err error
}

func (s failingAuditStore) Write(ctx context.Context, records ...domain.Record) error {
	for _, r := range records {
		if rec, _ := repository.Unwrap(r); rec.RecordKind() == domain.KindTransactionRecord {
			return s.err
		}
	}
	return s.Store.Write(ctx, records...)
}
