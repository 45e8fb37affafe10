// internal/service/handlers_view.go
package service

import (
	"cmp"
	"context"
	"slices"

	"bank-console/internal/domain"
	"bank-console/internal/util"
)

func (e *Engine) handleViewAccounts(ctx context.Context, req domain.Request) error {
	if _, err := expectParams(req, 0); err != nil {
		return err
	}
	accounts, err := e.store.ReadAllBankAccounts(ctx)
	if err != nil {
		return err
	}
	if e.isCustomer() {
		accounts = slices.DeleteFunc(accounts, func(a domain.BankAccount) bool {
			return !a.HasOwner(e.current.ID)
		})
	}
	if len(accounts) == 0 {
		e.io.DisplayText(MsgNothingToShow)
		return nil
	}
	e.io.DisplayAccounts(accounts)
	return nil
}

func (e *Engine) handleViewUsers(ctx context.Context, req domain.Request) error {
	if _, err := expectParams(req, 0); err != nil {
		return err
	}
	var profiles []domain.UserProfile
	if e.current.Role.IsStaff() {
		all, err := e.store.ReadAllUserProfiles(ctx)
		if err != nil {
			return err
		}
		profiles = all
	} else {
		self, err := e.loadProfile(ctx, e.current.ID)
		if err != nil {
			return err
		}
		profiles = []domain.UserProfile{self}
	}
	if len(profiles) == 0 {
		e.io.DisplayText(MsgNothingToShow)
		return nil
	}
	e.io.DisplayProfiles(profiles)
	return nil
}

// handleViewTransactions shows the audit trail. An optional account id
// narrows the view; customers only see records they triggered or that touch
// their accounts.
func (e *Engine) handleViewTransactions(ctx context.Context, req domain.Request) error {
	if len(req.Params) > 1 {
		return util.Reject(MsgBadParameters)
	}

	var (
		records []domain.TransactionRecord
		err     error
	)
	switch {
	case len(req.Params) == 1:
		accountID, perr := params{values: req.Params}.id(0)
		if perr != nil {
			return perr
		}
		if e.isCustomer() && !e.current.Owns(accountID) {
			return util.Reject(MsgNoPermission)
		}
		records, err = e.store.ReadTransactionsByAccount(ctx, accountID)
	case e.isCustomer():
		records, err = e.customerTransactions(ctx)
	default:
		records, err = e.store.ReadAllTransactionRecords(ctx)
	}
	if err != nil {
		return err
	}

	if len(records) == 0 {
		e.io.DisplayText(MsgNothingToShow)
		return nil
	}
	e.io.DisplayTransactions(records)
	return nil
}

func (e *Engine) customerTransactions(ctx context.Context) ([]domain.TransactionRecord, error) {
	byID := map[int64]domain.TransactionRecord{}

	own, err := e.store.ReadTransactionsByActingUser(ctx, e.current.ID)
	if err != nil {
		return nil, err
	}
	for _, tr := range own {
		byID[tr.ID] = tr
	}
	for _, accountID := range e.current.OwnedAccounts {
		touching, err := e.store.ReadTransactionsByAccount(ctx, accountID)
		if err != nil {
			return nil, err
		}
		for _, tr := range touching {
			byID[tr.ID] = tr
		}
	}

	records := make([]domain.TransactionRecord, 0, len(byID))
	for _, tr := range byID {
		records = append(records, tr)
	}
	slices.SortFunc(records, func(a, b domain.TransactionRecord) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return records, nil
}
