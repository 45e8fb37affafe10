// internal/service/handlers_funds.go
package service

import (
	"context"
	"fmt"
	"math"

	"bank-console/internal/domain"
	"bank-console/internal/util"
)

// fundsGuards are the rejection messages for one side of a funds movement.
type fundsGuards struct {
	notOwned string
	notOpen  string
}

var (
	depositGuards  = fundsGuards{notOwned: MsgDepositNotOwned, notOpen: MsgDepositNotOpen}
	withdrawGuards = fundsGuards{notOwned: MsgWithdrawNotOwned, notOpen: MsgWithdrawNotOpen}
)

// fundsTarget loads an account and applies the existence, ownership and
// open-status checks shared by every funds operation.
func (e *Engine) fundsTarget(ctx context.Context, accountID int64, g fundsGuards) (domain.BankAccount, error) {
	account, err := e.loadAccount(ctx, accountID)
	if err != nil {
		return domain.BankAccount{}, err
	}
	if e.isCustomer() && !account.HasOwner(e.current.ID) {
		return domain.BankAccount{}, util.Reject(g.notOwned)
	}
	if !account.IsOpen() {
		return domain.BankAccount{}, util.Reject(g.notOpen)
	}
	return account, nil
}

func credit(account *domain.BankAccount, amount int64) error {
	if account.Funds > math.MaxInt64-amount {
		return util.Reject(MsgDepositOverflow)
	}
	account.Funds += amount
	return nil
}

func debit(account *domain.BankAccount, amount int64) error {
	if account.Funds < amount {
		return util.Reject(MsgInsufficientFunds)
	}
	account.Funds -= amount
	return nil
}

// accountAndAmount parses the (accountId, amount) pair of DEPOSIT and WITHDRAW.
func accountAndAmount(req domain.Request) (accountID, amount int64, err error) {
	p, err := expectParams(req, 2)
	if err != nil {
		return 0, 0, err
	}
	if accountID, err = p.id(0); err != nil {
		return 0, 0, err
	}
	if amount, err = p.amount(1); err != nil {
		return 0, 0, err
	}
	return accountID, amount, nil
}

func (e *Engine) handleDeposit(ctx context.Context, req domain.Request) error {
	accountID, amount, err := accountAndAmount(req)
	if err != nil {
		return err
	}
	account, err := e.fundsTarget(ctx, accountID, depositGuards)
	if err != nil {
		return err
	}
	if err := credit(&account, amount); err != nil {
		return err
	}
	if err := e.store.Write(ctx, account); err != nil {
		return fmt.Errorf("deposit to account %d: %w", accountID, err)
	}

	e.logger.Info("Funds deposited", "account_id", accountID, "cents", amount, "principal", e.current.ID)
	e.io.DisplayText(MsgDepositSuccessful)
	e.audit(ctx, record(domain.TransactionFundsDeposited, domain.NoID, accountID, amount))
	return nil
}

func (e *Engine) handleWithdraw(ctx context.Context, req domain.Request) error {
	accountID, amount, err := accountAndAmount(req)
	if err != nil {
		return err
	}
	account, err := e.fundsTarget(ctx, accountID, withdrawGuards)
	if err != nil {
		return err
	}
	if err := debit(&account, amount); err != nil {
		return err
	}
	if err := e.store.Write(ctx, account); err != nil {
		return fmt.Errorf("withdraw from account %d: %w", accountID, err)
	}

	e.logger.Info("Funds withdrawn", "account_id", accountID, "cents", amount, "principal", e.current.ID)
	e.io.DisplayText(MsgWithdrawSuccessful)
	e.audit(ctx, record(domain.TransactionFundsWithdrawn, accountID, domain.NoID, amount))
	return nil
}

func (e *Engine) handleTransfer(ctx context.Context, req domain.Request) error {
	p, err := expectParams(req, 3)
	if err != nil {
		return err
	}
	sourceID, err := p.id(0)
	if err != nil {
		return err
	}
	destinationID, err := p.id(1)
	if err != nil {
		return err
	}
	amount, err := p.amount(2)
	if err != nil {
		return err
	}
	if sourceID == destinationID {
		return util.Reject(MsgTransferToSelf)
	}

	source, err := e.fundsTarget(ctx, sourceID, withdrawGuards)
	if err != nil {
		return err
	}
	if err := debit(&source, amount); err != nil {
		return err
	}
	destination, err := e.fundsTarget(ctx, destinationID, depositGuards)
	if err != nil {
		return err
	}
	if err := credit(&destination, amount); err != nil {
		return err
	}
	if err := e.store.Write(ctx, source, destination); err != nil {
		return fmt.Errorf("transfer from account %d to %d: %w", sourceID, destinationID, err)
	}

	e.logger.Info("Funds transferred", "source_id", sourceID, "destination_id", destinationID, "cents", amount, "principal", e.current.ID)
	e.io.DisplayText(MsgTransferSuccessful)
	e.audit(ctx, record(domain.TransactionFundsTransfered, sourceID, destinationID, amount))
	return nil
}
