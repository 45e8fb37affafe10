// internal/bankio/format.go
package bankio

import (
	"strconv"
	"strings"

	"bank-console/internal/domain"
)

const emptyField = "---"

// FormatProfile renders a profile on one line. Passwords are never shown.
func FormatProfile(p domain.UserProfile) string {
	return "ID: " + strconv.FormatInt(p.ID, 10) +
		" | USERNAME: " + p.Username +
		" | ROLE: " + string(p.Role) +
		" | ACCOUNTS: " + idList(p.OwnedAccounts)
}

// FormatAccount renders an account on one line.
func FormatAccount(a domain.BankAccount) string {
	return "ID: " + strconv.FormatInt(a.ID, 10) +
		" | STATUS: " + string(a.Status) +
		" | TYPE: " + string(a.Type) +
		" | FUNDS: " + FormatMoney(a.Funds) +
		" | OWNERS: " + idList(a.Owners)
}

// FormatTransaction renders an audit record on one line.
func FormatTransaction(t domain.TransactionRecord) string {
	amount := emptyField
	if t.MoneyAmount != domain.NoID {
		amount = FormatMoney(t.MoneyAmount)
	}
	return "ID: " + strconv.FormatInt(t.ID, 10) +
		" | TIME: " + t.Time +
		" | KIND: " + string(t.Kind) +
		" | BY: " + optionalID(t.ActingUser) +
		" | SOURCE: " + optionalID(t.SourceAccount) +
		" | DESTINATION: " + optionalID(t.DestinationAccount) +
		" | AMOUNT: " + amount
}

func optionalID(id int64) string {
	if id == domain.NoID {
		return emptyField
	}
	return strconv.FormatInt(id, 10)
}

func idList(ids []int64) string {
	if len(ids) == 0 {
		return emptyField
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}
