// internal/repository/relational/transaction_sql.go
package relational

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bank-console/internal/domain"
	"bank-console/internal/repository"
	"bank-console/internal/util"
)

// transactionRow is a transaction_record row before its kind is checked.
type transactionRow struct {
	ID                 int64  `db:"trans_id"`
	Time               string `db:"ts"`
	Kind               string `db:"kind"`
	ActingUser         int64  `db:"acting_user"`
	SourceAccount      int64  `db:"source_account"`
	DestinationAccount int64  `db:"destination_account"`
	MoneyAmount        int64  `db:"money_amount"`
}

func (r transactionRow) record() (domain.TransactionRecord, error) {
	kind, err := domain.ParseTransactionKind(r.Kind)
	if err != nil {
		return domain.TransactionRecord{}, fmt.Errorf("%w: transaction_record %d: %v", util.ErrCorruptRecord, r.ID, err)
	}
	return domain.TransactionRecord{
		ID:                 r.ID,
		Time:               r.Time,
		Kind:               kind,
		ActingUser:         r.ActingUser,
		SourceAccount:      r.SourceAccount,
		DestinationAccount: r.DestinationAccount,
		MoneyAmount:        r.MoneyAmount,
	}, nil
}

const selectTransactions = `
	SELECT trans_id, ts, kind, acting_user, source_account, destination_account, money_amount
	FROM transaction_record`

const insertTransaction = `INSERT INTO transaction_record
                  (trans_id, ts, kind, acting_user, source_account, destination_account, money_amount)
              VALUES (?, ?, ?, ?, ?, ?, ?)`

type transactionQueries struct{}

func (transactionQueries) list(ctx context.Context, q repository.DBExecutor, where string, args ...interface{}) ([]domain.TransactionRecord, error) {
	var rows []transactionRow
	if err := q.SelectContext(ctx, &rows, q.Rebind(selectTransactions+where+` ORDER BY trans_id`), args...); err != nil {
		return nil, err
	}
	records := make([]domain.TransactionRecord, 0, len(rows))
	for _, r := range rows {
		tr, err := r.record()
		if err != nil {
			return nil, err
		}
		records = append(records, tr)
	}
	return records, nil
}

func (transactionQueries) getByID(ctx context.Context, q repository.DBExecutor, id int64) (domain.TransactionRecord, error) {
	var row transactionRow
	err := q.GetContext(ctx, &row, q.Rebind(selectTransactions+` WHERE trans_id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.TransactionRecord{}, util.ErrNotFound
	}
	if err != nil {
		return domain.TransactionRecord{}, err
	}
	return row.record()
}

func (transactionQueries) highestID(ctx context.Context, q repository.DBExecutor) (int64, error) {
	var id int64
	err := q.GetContext(ctx, &id, `SELECT COALESCE(MAX(trans_id), -1) FROM transaction_record`)
	return id, err
}

// insert fails on an existing trans_id.
func (transactionQueries) insert(ctx context.Context, q repository.DBExecutor, t domain.TransactionRecord) error {
	_, err := q.ExecContext(ctx, q.Rebind(insertTransaction),
		t.ID, t.Time, string(t.Kind), t.ActingUser, t.SourceAccount, t.DestinationAccount, t.MoneyAmount)
	return err
}

func (transactionQueries) upsert(ctx context.Context, q repository.DBExecutor, t domain.TransactionRecord) error {
	query := insertTransaction + `
              ON CONFLICT (trans_id) DO UPDATE SET
                  ts = excluded.ts,
                  kind = excluded.kind,
                  acting_user = excluded.acting_user,
                  source_account = excluded.source_account,
                  destination_account = excluded.destination_account,
                  money_amount = excluded.money_amount`
	_, err := q.ExecContext(ctx, q.Rebind(query),
		t.ID, t.Time, string(t.Kind), t.ActingUser, t.SourceAccount, t.DestinationAccount, t.MoneyAmount)
	return err
}
