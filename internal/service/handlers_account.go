// internal/service/handlers_account.go
package service

import (
	"context"
	"fmt"

	"bank-console/internal/domain"
	"bank-console/internal/repository"
	"bank-console/internal/util"
)

func (e *Engine) handleApplyOpenAccount(ctx context.Context, req domain.Request) error {
	if _, err := expectParams(req, 0); err != nil {
		return err
	}
	self, err := e.loadProfile(ctx, e.current.ID)
	if err != nil {
		return err
	}
	top, err := e.store.HighestAccountID(ctx)
	if err != nil {
		return err
	}

	account := domain.NewPendingAccount(top+1, self.ID)
	self.AddOwnedAccount(account.ID)
	if err := e.store.Write(ctx, repository.Fresh(account), self); err != nil {
		return fmt.Errorf("apply for account: %w", err)
	}

	e.current = self
	e.logger.Info("Account application filed", "account_id", account.ID, "user_id", self.ID)
	e.io.DisplayText(MsgAccountApplied)
	e.audit(ctx, record(domain.TransactionAccountRegistered, domain.NoID, account.ID, domain.NoID))
	return nil
}

// handleReviewApplication approves or denies a pending account.
func (e *Engine) handleReviewApplication(approve bool) handlerFunc {
	return func(ctx context.Context, req domain.Request) error {
		if err := e.requireRole(domain.RoleEmployee, domain.RoleAdmin); err != nil {
			return err
		}
		p, err := expectParams(req, 1)
		if err != nil {
			return err
		}
		accountID, err := p.id(0)
		if err != nil {
			return err
		}
		account, err := e.loadAccount(ctx, accountID)
		if err != nil {
			return err
		}
		if account.Status != domain.AccountStatusPending {
			return util.Reject(MsgAccountNotPending)
		}

		kind, msg := domain.TransactionAccountApproved, MsgAccountApproved
		if approve {
			account.Status = domain.AccountStatusOpen
		} else {
			account.Close()
			kind, msg = domain.TransactionAccountClosed, MsgAccountDenied
		}
		if err := e.store.Write(ctx, account); err != nil {
			return fmt.Errorf("review account %d: %w", accountID, err)
		}

		e.logger.Info("Account application reviewed", "account_id", accountID, "approved", approve, "principal", e.current.ID)
		e.io.DisplayText(msg)
		e.audit(ctx, record(kind, domain.NoID, accountID, domain.NoID))
		return nil
	}
}

func (e *Engine) handleCloseAccount(ctx context.Context, req domain.Request) error {
	if err := e.requireRole(domain.RoleAdmin); err != nil {
		return err
	}
	p, err := expectParams(req, 1)
	if err != nil {
		return err
	}
	accountID, err := p.id(0)
	if err != nil {
		return err
	}
	account, err := e.loadAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if !account.IsOpen() {
		return util.Reject(MsgCloseNotOpen)
	}

	released := account.Funds
	account.Close()
	if err := e.store.Write(ctx, account); err != nil {
		return fmt.Errorf("close account %d: %w", accountID, err)
	}

	e.logger.Info("Account closed", "account_id", accountID, "released_cents", released, "principal", e.current.ID)
	e.io.DisplayText(MsgAccountClosed)
	e.audit(ctx, record(domain.TransactionAccountClosed, accountID, domain.NoID, released))
	return nil
}

// ownerChange is the parsed (account, user) pair of ADD/REMOVE_ACCOUNT_OWNER.
func ownerChange(req domain.Request) (accountID, userID int64, err error) {
	p, err := expectParams(req, 2)
	if err != nil {
		return 0, 0, err
	}
	if accountID, err = p.id(0); err != nil {
		return 0, 0, err
	}
	if userID, err = p.id(1); err != nil {
		return 0, 0, err
	}
	return accountID, userID, nil
}

func (e *Engine) handleAddAccountOwner(ctx context.Context, req domain.Request) error {
	accountID, userID, err := ownerChange(req)
	if err != nil {
		return err
	}
	if e.isCustomer() && !e.current.Owns(accountID) {
		return util.Reject(MsgAddNotOwned)
	}
	account, err := e.loadAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if !account.IsOpen() {
		return util.Reject(MsgAddNotOpen)
	}
	target, err := e.loadProfile(ctx, userID)
	if err != nil {
		return err
	}
	if target.Role != domain.RoleCustomer {
		return util.Reject(MsgAddNotCustomer)
	}
	if account.HasOwner(target.ID) {
		return util.Reject(MsgAddAlreadyOwner)
	}

	account.AddOwner(target.ID)
	target.AddOwnedAccount(account.ID)
	if err := e.store.Write(ctx, account, target); err != nil {
		return fmt.Errorf("add owner %d to account %d: %w", userID, accountID, err)
	}

	e.logger.Info("Account owner added", "account_id", accountID, "user_id", userID, "principal", e.current.ID)
	e.io.DisplayText(MsgOwnerAdded)
	e.audit(ctx, record(domain.TransactionAccountOwnerAdded, userID, accountID, domain.NoID))
	return nil
}

func (e *Engine) handleRemoveAccountOwner(ctx context.Context, req domain.Request) error {
	accountID, userID, err := ownerChange(req)
	if err != nil {
		return err
	}
	if e.isCustomer() && !e.current.Owns(accountID) {
		return util.Reject(MsgRemoveNotOwned)
	}
	account, err := e.loadAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if !account.IsOpen() {
		return util.Reject(MsgRemoveNotOpen)
	}
	target, err := e.loadProfile(ctx, userID)
	if err != nil {
		return err
	}
	if !account.HasOwner(target.ID) {
		return util.Reject(MsgRemoveNotAnOwner)
	}
	if len(account.Owners) == 1 {
		return util.Reject(MsgRemoveLastOwner)
	}
	if e.isCustomer() && e.current.ID != target.ID {
		return util.Reject(MsgRemoveOtherCustomer)
	}

	account.RemoveOwner(target.ID)
	target.RemoveOwnedAccount(account.ID)
	if err := e.store.Write(ctx, account, target); err != nil {
		return fmt.Errorf("remove owner %d from account %d: %w", userID, accountID, err)
	}

	e.logger.Info("Account owner removed", "account_id", accountID, "user_id", userID, "principal", e.current.ID)
	e.io.DisplayText(MsgOwnerRemoved)
	e.audit(ctx, record(domain.TransactionAccountOwnerRemoved, userID, accountID, domain.NoID))
	return nil
}
