// internal/service/messages.go
package service

// Operator-facing messages. Tests compare against these verbatim.
const (
	MsgWelcome         = "Welcome to the bank!"
	MsgLoggedInAs      = "LOGGED IN AS: "
	MsgNotLoggedIn     = "LOGGED IN AS: N/A"
	MsgLoggingOut      = "Logging out."
	MsgQuitting        = "Quitting."
	MsgNoPermission    = "Unable to proceed: You do not have permission to take that action."
	MsgBadParameters   = "Unable to proceed: The request was missing or had malformed parameters."
	MsgStoreLost       = "Connection to database lost; quitting application."
	MsgAuditFailed     = "ALERT: The transaction was carried out, but there was a problem adding it to the log"
	MsgNothingToShow   = "No records to display."
	MsgUserRegistered  = "New user profile registered."
	MsgEmployeeCreated = "New employee profile registered."
	MsgAdminCreated    = "New admin profile registered."
	MsgUsernameTaken   = "Unable to proceed: That username is already in use."
	MsgNoSuchUsername  = "Unable to proceed: No profile found matching username: "
	MsgWrongPassword   = "Unable to proceed: Incorrect password."
	MsgNoSuchUserID    = "Unable to proceed: No user exists with ID: "
	MsgNoSuchAccountID = "Unable to proceed: No account exists with ID: "

	MsgAccountApplied    = "Account created, pending approval."
	MsgAccountApproved   = "Account approved."
	MsgAccountDenied     = "Account denied."
	MsgAccountNotPending = "Unable to proceed: That account is not pending approval."
	MsgAccountClosed     = "Account closed. All funds withdrawn and returned to account owner(s)."
	MsgCloseNotOpen      = "Unable to proceed: That account cannot be closed because it is not open."

	MsgOwnerAdded          = "New owner successfully added to account"
	MsgAddNotOwned         = "Unable to proceed: You do not have permission to add users to an account you do not own."
	MsgAddNotCustomer      = "Unable to proceed: That user cannot be added to this account because they are not a customer."
	MsgAddAlreadyOwner     = "Unable to proceed: That user cannot be added to this account because they are already an owner of the account."
	MsgAddNotOpen          = "Unable to proceed: You cannot add an owner to that account because that account is not open."
	MsgOwnerRemoved        = "User has successfuly been removed from that account."
	MsgRemoveNotOwned      = "Unable to proceed: You do not have permission to remove users from an account you do not own."
	MsgRemoveNotAnOwner    = "Unable to proceed: The user you are trying to remove is not an owner of that account."
	MsgRemoveLastOwner     = "Unable to proceed: You cannot remove the last owner of an open account. Contact support and have the account closed first."
	MsgRemoveOtherCustomer = "Unable to proceed: A customer cannot remove another customer. Have the other customer remove themselves,or contact support for assistance."
	MsgRemoveNotOpen       = "Unable to proceed: You cannot remove an owner from that account because that account is not open."

	MsgDepositSuccessful  = "Deposit successful."
	MsgDepositNotOwned    = "Unable to proceed: You cannot deposit to an account you do not own. Use a transfer instead."
	MsgDepositNotOpen     = "Unable to proceed: You cannot deposit to an account that is not open."
	MsgDepositOverflow    = "Unable to proceed: That deposit would exceed the maximum account balance."
	MsgWithdrawSuccessful = "Withdrawal successful."
	MsgWithdrawNotOwned   = "Unable to proceed: You cannot withdraw from an account you do not own. Use a transfer instead."
	MsgWithdrawNotOpen    = "Unable to proceed: You cannot withdraw from an account that is not open."
	MsgInsufficientFunds  = "Unable to proceed: There are insufficient funds in that account."
	MsgTransferSuccessful = "Transfer successful."
	MsgTransferToSelf     = "Unable to proceed: Cannot transfer funds from an account to itself."
)
