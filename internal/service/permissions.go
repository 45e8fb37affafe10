// internal/service/permissions.go
package service

import (
	"slices"

	"bank-console/internal/domain"
)

// PrincipalState is the input to the permission table.
type PrincipalState int

const (
	PrincipalAnonymous PrincipalState = iota
	PrincipalCustomerNoAccounts
	PrincipalCustomerWithAccounts
	PrincipalEmployee
	PrincipalAdmin
)

func (s PrincipalState) String() string {
	switch s {
	case PrincipalCustomerNoAccounts:
		return "customer without accounts"
	case PrincipalCustomerWithAccounts:
		return "customer with accounts"
	case PrincipalEmployee:
		return "employee"
	case PrincipalAdmin:
		return "admin"
	}
	return "anonymous"
}

// menus is the permission table. Order is the order operations are offered in.
var menus = map[PrincipalState][]domain.RequestKind{
	PrincipalAnonymous: {
		domain.RequestLogIn,
		domain.RequestRegisterUser,
		domain.RequestQuit,
	},
	PrincipalCustomerNoAccounts: {
		domain.RequestApplyOpenAccount,
		domain.RequestLogOut,
		domain.RequestQuit,
	},
	PrincipalCustomerWithAccounts: {
		domain.RequestViewAccounts,
		domain.RequestDeposit,
		domain.RequestWithdraw,
		domain.RequestTransfer,
		domain.RequestViewTransactions,
		domain.RequestAddAccountOwner,
		domain.RequestRemoveAccountOwner,
		domain.RequestApplyOpenAccount,
		domain.RequestLogOut,
		domain.RequestQuit,
	},
	PrincipalEmployee: {
		domain.RequestViewAccounts,
		domain.RequestViewUsers,
		domain.RequestApproveOpenAccount,
		domain.RequestDenyOpenAccount,
		domain.RequestLogOut,
		domain.RequestQuit,
	},
	PrincipalAdmin: {
		domain.RequestViewAccounts,
		domain.RequestViewUsers,
		domain.RequestApproveOpenAccount,
		domain.RequestDenyOpenAccount,
		domain.RequestWithdraw,
		domain.RequestDeposit,
		domain.RequestTransfer,
		domain.RequestCloseAccount,
		domain.RequestCreateEmployee,
		domain.RequestCreateAdmin,
		domain.RequestLogOut,
		domain.RequestQuit,
	},
}

// StateOf classifies a principal for the permission table.
func StateOf(p domain.UserProfile) PrincipalState {
	if p.IsNone() {
		return PrincipalAnonymous
	}
	switch p.Role {
	case domain.RoleCustomer:
		if len(p.OwnedAccounts) == 0 {
			return PrincipalCustomerNoAccounts
		}
		return PrincipalCustomerWithAccounts
	case domain.RoleEmployee:
		return PrincipalEmployee
	case domain.RoleAdmin:
		return PrincipalAdmin
	}
	return PrincipalAnonymous
}

// MenuFor returns a copy of the operations offered to p.
func MenuFor(p domain.UserProfile) []domain.RequestKind {
	return slices.Clone(menus[StateOf(p)])
}

// Allowed reports whether kind is on menu.
func Allowed(menu []domain.RequestKind, kind domain.RequestKind) bool {
	return slices.Contains(menu, kind)
}
