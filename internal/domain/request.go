// internal/domain/request.go
package domain

import "fmt"

// RequestKind is the operation a console request asks for.
type RequestKind string

const (
	RequestRegisterUser       RequestKind = "REGISTER_USER"
	RequestLogIn              RequestKind = "LOG_IN"
	RequestLogOut             RequestKind = "LOG_OUT"
	RequestQuit               RequestKind = "QUIT"
	RequestApplyOpenAccount   RequestKind = "APPLY_OPEN_ACCOUNT"
	RequestApproveOpenAccount RequestKind = "APPROVE_OPEN_ACCOUNT"
	RequestDenyOpenAccount    RequestKind = "DENY_OPEN_ACCOUNT"
	RequestCloseAccount       RequestKind = "CLOSE_ACCOUNT"
	RequestAddAccountOwner    RequestKind = "ADD_ACCOUNT_OWNER"
	RequestRemoveAccountOwner RequestKind = "REMOVE_ACCOUNT_OWNER"
	RequestDeposit            RequestKind = "DEPOSIT"
	RequestWithdraw           RequestKind = "WITHDRAW"
	RequestTransfer           RequestKind = "TRANSFER"
	RequestViewAccounts       RequestKind = "VIEW_ACCOUNTS"
	RequestViewUsers          RequestKind = "VIEW_USERS"
	RequestViewTransactions   RequestKind = "VIEW_TRANSACTIONS"
	RequestCreateEmployee     RequestKind = "CREATE_EMPLOYEE"
	RequestCreateAdmin        RequestKind = "CREATE_ADMIN"
)

// RequestKinds lists every operation kind.
var RequestKinds = []RequestKind{
	RequestRegisterUser,
	RequestLogIn,
	RequestLogOut,
	RequestQuit,
	RequestApplyOpenAccount,
	RequestApproveOpenAccount,
	RequestDenyOpenAccount,
	RequestCloseAccount,
	RequestAddAccountOwner,
	RequestRemoveAccountOwner,
	RequestDeposit,
	RequestWithdraw,
	RequestTransfer,
	RequestViewAccounts,
	RequestViewUsers,
	RequestViewTransactions,
	RequestCreateEmployee,
	RequestCreateAdmin,
}

// ParseRequestKind converts a kind name into a RequestKind.
func ParseRequestKind(s string) (RequestKind, error) {
	for _, k := range RequestKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown request kind %q", s)
}

// Request is an operation kind plus its positional string parameters.
type Request struct {
	Kind   RequestKind
	Params []string
}

// NewRequest builds a request.
func NewRequest(kind RequestKind, params ...string) Request {
	return Request{Kind: kind, Params: params}
}

func (r Request) String() string {
	return fmt.Sprintf("%s%v", r.Kind, r.Params)
}
