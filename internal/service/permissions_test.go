// internal/service/permissions_test.go
package service

import (
	"testing"

	"bank-console/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestStateOf(t *testing.T) {
	withAccount := domain.NewUserProfile(1, "c", "p", domain.RoleCustomer)
	withAccount.AddOwnedAccount(3)

	tests := []struct {
		name    string
		profile domain.UserProfile
		want    PrincipalState
	}{
		{"nobody", domain.NoUser(), PrincipalAnonymous},
		{"customer without accounts", domain.NewUserProfile(1, "c", "p", domain.RoleCustomer), PrincipalCustomerNoAccounts},
		{"customer with accounts", withAccount, PrincipalCustomerWithAccounts},
		{"employee", domain.NewUserProfile(2, "e", "p", domain.RoleEmployee), PrincipalEmployee},
		{"admin", domain.NewUserProfile(3, "a", "p", domain.RoleAdmin), PrincipalAdmin},
		{"role none", domain.NewUserProfile(4, "n", "p", domain.RoleNone), PrincipalAnonymous},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StateOf(tt.profile))
		})
	}
}

func TestMenuFor(t *testing.T) {
	assert.Equal(t,
		[]domain.RequestKind{domain.RequestLogIn, domain.RequestRegisterUser, domain.RequestQuit},
		MenuFor(domain.NoUser()))

	assert.Equal(t,
		[]domain.RequestKind{domain.RequestApplyOpenAccount, domain.RequestLogOut, domain.RequestQuit},
		MenuFor(domain.NewUserProfile(0, "c", "p", domain.RoleCustomer)))

	admin := MenuFor(domain.NewUserProfile(999, "admin", "admin", domain.RoleAdmin))
	assert.Equal(t, []domain.RequestKind{
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
	}, admin)

	employee := MenuFor(domain.NewUserProfile(5, "e", "p", domain.RoleEmployee))
	assert.NotContains(t, employee, domain.RequestCloseAccount)
	assert.NotContains(t, employee, domain.RequestDeposit)
}

func TestMenuFor_ReturnsCopy(t *testing.T) {
	menu := MenuFor(domain.NoUser())
	menu[0] = domain.RequestCloseAccount

	assert.Equal(t, domain.RequestLogIn, MenuFor(domain.NoUser())[0])
}

func TestEveryMenuEndsWithQuit(t *testing.T) {
	for state, menu := range menus {
		assert.Equal(t, domain.RequestQuit, menu[len(menu)-1], state.String())
	}
}
