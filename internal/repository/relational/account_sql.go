// internal/repository/relational/account_sql.go
package relational

import (
	"context"
	"database/sql"
	"fmt"

	"bank-console/internal/domain"
	"bank-console/internal/repository"
	"bank-console/internal/util"
)

// accountRow is one row of the account/ownership join.
type accountRow struct {
	AccountID int64         `db:"account_id"`
	Status    string        `db:"status"`
	Type      string        `db:"type"`
	Funds     int64         `db:"funds"`
	UserID    sql.NullInt64 `db:"user_id"`
}

const selectAccounts = `
	SELECT a.account_id, a.status, a.type, a.funds, o.user_id
	FROM bank_account a
	LEFT JOIN account_ownership o ON o.account_id = a.account_id`

const orderAccounts = ` ORDER BY a.account_id, o.user_id`

type accountQueries struct{}

func (accountQueries) list(ctx context.Context, q repository.DBExecutor, where string, args ...interface{}) ([]domain.BankAccount, error) {
	var rows []accountRow
	if err := q.SelectContext(ctx, &rows, q.Rebind(selectAccounts+where+orderAccounts), args...); err != nil {
		return nil, err
	}
	return foldAccounts(rows)
}

func foldAccounts(rows []accountRow) ([]domain.BankAccount, error) {
	var out []domain.BankAccount
	for _, r := range rows {
		if n := len(out); n == 0 || out[n-1].ID != r.AccountID {
			status, err := domain.ParseAccountStatus(r.Status)
			if err != nil {
				return nil, fmt.Errorf("%w: bank_account %d: %v", util.ErrCorruptRecord, r.AccountID, err)
			}
			typ, err := domain.ParseAccountType(r.Type)
			if err != nil {
				return nil, fmt.Errorf("%w: bank_account %d: %v", util.ErrCorruptRecord, r.AccountID, err)
			}
			out = append(out, domain.BankAccount{
				ID:     r.AccountID,
				Status: status,
				Type:   typ,
				Funds:  r.Funds,
			})
		}
		if r.UserID.Valid {
			last := &out[len(out)-1]
			last.Owners = append(last.Owners, r.UserID.Int64)
		}
	}
	return out, nil
}

func (aq accountQueries) getByID(ctx context.Context, q repository.DBExecutor, id int64) (domain.BankAccount, error) {
	accounts, err := aq.list(ctx, q, ` WHERE a.account_id = ?`, id)
	if err != nil {
		return domain.BankAccount{}, err
	}
	if len(accounts) == 0 {
		return domain.BankAccount{}, util.ErrNotFound
	}
	return accounts[0], nil
}

func (accountQueries) highestID(ctx context.Context, q repository.DBExecutor) (int64, error) {
	var id int64
	err := q.GetContext(ctx, &id, `SELECT COALESCE(MAX(account_id), -1) FROM bank_account`)
	return id, err
}

const insertAccount = `INSERT INTO bank_account (account_id, status, type, funds)
              VALUES (?, ?, ?, ?)`

// insert adds a new account and its owners. It fails on an existing account_id.
func (aq accountQueries) insert(ctx context.Context, q repository.DBExecutor, a domain.BankAccount) error {
	if _, err := q.ExecContext(ctx, q.Rebind(insertAccount), a.ID, string(a.Status), string(a.Type), a.Funds); err != nil {
		return fmt.Errorf("insert account %d: %w", a.ID, err)
	}
	return aq.addOwners(ctx, q, a)
}

// upsert writes the account row and replaces its ownership set.
func (aq accountQueries) upsert(ctx context.Context, q repository.DBExecutor, a domain.BankAccount) error {
	query := insertAccount + `
              ON CONFLICT (account_id) DO UPDATE SET
                  status = excluded.status,
                  type = excluded.type,
                  funds = excluded.funds`
	if _, err := q.ExecContext(ctx, q.Rebind(query), a.ID, string(a.Status), string(a.Type), a.Funds); err != nil {
		return fmt.Errorf("upsert account %d: %w", a.ID, err)
	}

	if _, err := q.ExecContext(ctx, q.Rebind(`DELETE FROM account_ownership WHERE account_id = ?`), a.ID); err != nil {
		return fmt.Errorf("clear owners of account %d: %w", a.ID, err)
	}
	return aq.addOwners(ctx, q, a)
}

func (accountQueries) addOwners(ctx context.Context, q repository.DBExecutor, a domain.BankAccount) error {
	insert := q.Rebind(`INSERT INTO account_ownership (account_id, user_id) VALUES (?, ?)`)
	for _, owner := range a.Owners {
		if _, err := q.ExecContext(ctx, insert, a.ID, owner); err != nil {
			return fmt.Errorf("add owner %d to account %d: %w", owner, a.ID, err)
		}
	}
	return nil
}
