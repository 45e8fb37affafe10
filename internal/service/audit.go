// internal/service/audit.go
package service

import (
	"context"
	"time"

	"bank-console/internal/domain"
	"bank-console/internal/repository"
)

// audit appends a transaction record for an operation that already took
// effect. A failed append is reported to the operator but the operation
// stands: at most one audit record goes missing per failure.
func (e *Engine) audit(ctx context.Context, tr domain.TransactionRecord) {
	if err := e.appendRecord(ctx, tr); err != nil {
		e.logger.Warn("Failed to append audit record", "kind", tr.Kind, "principal", e.current.ID, "error", err)
		e.io.DisplayText(MsgAuditFailed)
	}
}

func (e *Engine) appendRecord(ctx context.Context, tr domain.TransactionRecord) error {
	top, err := e.store.HighestTransactionID(ctx)
	if err != nil {
		return err
	}
	tr.ID = top + 1
	tr.ActingUser = e.current.ID
	tr.Time = e.now().UTC().Format(time.RFC3339)
	return e.store.Write(ctx, repository.Fresh(tr))
}

// record builds an audit entry of kind touching src and dst accounts.
func record(kind domain.TransactionKind, src, dst, amount int64) domain.TransactionRecord {
	tr := domain.NewTransactionRecord(kind)
	tr.SourceAccount = src
	tr.DestinationAccount = dst
	tr.MoneyAmount = amount
	return tr
}
