// internal/repository/textfile/codec.go
package textfile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"bank-console/internal/domain"
	"bank-console/internal/util"
)

// Entry tags.
const (
	tagProfile     = "PRF"
	tagAccount     = "ACC"
	tagTransaction = "TRR"
)

var tagByKind = map[domain.RecordKind]string{
	domain.KindUserProfile:       tagProfile,
	domain.KindBankAccount:       tagAccount,
	domain.KindTransactionRecord: tagTransaction,
}

var roleCodes = map[domain.Role]string{
	domain.RoleNone:     "NON",
	domain.RoleCustomer: "CST",
	domain.RoleEmployee: "EMP",
	domain.RoleAdmin:    "ADM",
}

var statusCodes = map[domain.AccountStatus]string{
	domain.AccountStatusNone:    "NON",
	domain.AccountStatusOpen:    "OPN",
	domain.AccountStatusClosed:  "CLS",
	domain.AccountStatusPending: "PND",
}

var typeCodes = map[domain.AccountType]string{
	domain.AccountTypeNone:   "NON",
	domain.AccountTypeSingle: "SNG",
	domain.AccountTypeJoint:  "JNT",
}

var kindCodes = map[domain.TransactionKind]string{
	domain.TransactionAccountRegistered:   "ACR",
	domain.TransactionAccountApproved:     "ACA",
	domain.TransactionAccountClosed:       "ACC",
	domain.TransactionAccountOwnerAdded:   "AOA",
	domain.TransactionAccountOwnerRemoved: "AOR",
	domain.TransactionFundsTransfered:     "FTR",
	domain.TransactionFundsDeposited:      "FDP",
	domain.TransactionFundsWithdrawn:      "FWD",
	domain.TransactionUserRegistered:      "URG",
	domain.TransactionNone:                "NON",
}

var (
	roleByCode   = invert(roleCodes)
	statusByCode = invert(statusCodes)
	typeByCode   = invert(typeCodes)
	kindByCode   = invert(kindCodes)
)

func invert[K comparable](m map[K]string) map[string]K {
	out := make(map[string]K, len(m))
	for k, code := range m {
		out[code] = k
	}
	return out
}

// entry is one tokenised line: its tag, its id, and the remaining fields.
type entry struct {
	tag    string
	id     int64
	fields []string
}

func (e entry) key() entryKey { return entryKey{tag: e.tag, id: e.id} }

type entryKey struct {
	tag string
	id  int64
}

// parseEntry tokenises a line. Blank lines yield ok == false.
func parseEntry(line string) (e entry, ok bool, err error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return entry{}, false, nil
	}
	if len(tokens) < 2 {
		return entry{}, false, fmt.Errorf("%w: entry %q has no id", util.ErrCorruptRecord, line)
	}
	switch tokens[0] {
	case tagProfile, tagAccount, tagTransaction:
	default:
		return entry{}, false, fmt.Errorf("%w: unknown tag %q", util.ErrCorruptRecord, tokens[0])
	}
	id, err := strconv.ParseInt(tokens[1], 10, 64)
	if err != nil {
		return entry{}, false, fmt.Errorf("%w: bad id in %q", util.ErrCorruptRecord, line)
	}
	return entry{tag: tokens[0], id: id, fields: tokens[2:]}, true, nil
}

// Encode renders a record as one line without the trailing newline.
func Encode(r domain.Record) (string, error) {
	switch v := r.(type) {
	case domain.UserProfile:
		return encodeProfile(v)
	case domain.BankAccount:
		return encodeAccount(v)
	case domain.TransactionRecord:
		return encodeTransaction(v)
	}
	return "", fmt.Errorf("cannot encode %T", r)
}

func encodeProfile(p domain.UserProfile) (string, error) {
	if !domain.ValidCredential(p.Username) || !domain.ValidCredential(p.Password) {
		return "", fmt.Errorf("profile %d: username and password must be non-empty without whitespace", p.ID)
	}
	role, ok := roleCodes[p.Role]
	if !ok {
		return "", fmt.Errorf("profile %d: unknown role %q", p.ID, p.Role)
	}
	parts := []string{tagProfile, itoa(p.ID), p.Username, p.Password, role}
	for _, acc := range p.OwnedAccounts {
		parts = append(parts, itoa(acc))
	}
	return strings.Join(parts, " "), nil
}

func encodeAccount(a domain.BankAccount) (string, error) {
	status, ok := statusCodes[a.Status]
	if !ok {
		return "", fmt.Errorf("account %d: unknown status %q", a.ID, a.Status)
	}
	typ, ok := typeCodes[a.Type]
	if !ok {
		return "", fmt.Errorf("account %d: unknown type %q", a.ID, a.Type)
	}
	parts := []string{tagAccount, itoa(a.ID), status, typ, itoa(a.Funds)}
	for _, owner := range a.Owners {
		parts = append(parts, itoa(owner))
	}
	return strings.Join(parts, " "), nil
}

func encodeTransaction(t domain.TransactionRecord) (string, error) {
	if !domain.ValidCredential(t.Time) {
		return "", fmt.Errorf("transaction %d: time must be non-empty without whitespace", t.ID)
	}
	kind, ok := kindCodes[t.Kind]
	if !ok {
		return "", fmt.Errorf("transaction %d: unknown kind %q", t.ID, t.Kind)
	}
	return strings.Join([]string{
		tagTransaction,
		itoa(t.ID),
		t.Time,
		kind,
		itoa(t.ActingUser),
		itoa(t.SourceAccount),
		itoa(t.DestinationAccount),
		itoa(t.MoneyAmount),
	}, " "), nil
}

func decodeProfile(e entry) (domain.UserProfile, error) {
	if len(e.fields) < 3 {
		return domain.UserProfile{}, corrupt(e, errors.New("want username, password and role"))
	}
	role, ok := roleByCode[e.fields[2]]
	if !ok {
		return domain.UserProfile{}, corrupt(e, fmt.Errorf("unknown role code %q", e.fields[2]))
	}
	owned, err := parseIDs(e.fields[3:])
	if err != nil {
		return domain.UserProfile{}, corrupt(e, err)
	}
	p := domain.NewUserProfile(e.id, e.fields[0], e.fields[1], role)
	p.OwnedAccounts = domain.SortIDs(owned)
	return p, nil
}

func decodeAccount(e entry) (domain.BankAccount, error) {
	if len(e.fields) < 3 {
		return domain.BankAccount{}, corrupt(e, errors.New("want status, type and funds"))
	}
	status, ok := statusByCode[e.fields[0]]
	if !ok {
		return domain.BankAccount{}, corrupt(e, fmt.Errorf("unknown status code %q", e.fields[0]))
	}
	typ, ok := typeByCode[e.fields[1]]
	if !ok {
		return domain.BankAccount{}, corrupt(e, fmt.Errorf("unknown type code %q", e.fields[1]))
	}
	funds, err := strconv.ParseInt(e.fields[2], 10, 64)
	if err != nil {
		return domain.BankAccount{}, corrupt(e, fmt.Errorf("bad funds %q", e.fields[2]))
	}
	owners, err := parseIDs(e.fields[3:])
	if err != nil {
		return domain.BankAccount{}, corrupt(e, err)
	}
	return domain.BankAccount{
		ID:     e.id,
		Status: status,
		Type:   typ,
		Funds:  funds,
		Owners: domain.SortIDs(owners),
	}, nil
}

func decodeTransaction(e entry) (domain.TransactionRecord, error) {
	if len(e.fields) != 6 {
		return domain.TransactionRecord{}, corrupt(e, fmt.Errorf("want 6 fields, got %d", len(e.fields)))
	}
	kind, ok := kindByCode[e.fields[1]]
	if !ok {
		return domain.TransactionRecord{}, corrupt(e, fmt.Errorf("unknown kind code %q", e.fields[1]))
	}
	nums, err := parseIDs(e.fields[2:])
	if err != nil {
		return domain.TransactionRecord{}, corrupt(e, err)
	}
	return domain.TransactionRecord{
		ID:                 e.id,
		Time:               e.fields[0],
		Kind:               kind,
		ActingUser:         nums[0],
		SourceAccount:      nums[1],
		DestinationAccount: nums[2],
		MoneyAmount:        nums[3],
	}, nil
}

// usernameOf returns the username field of a profile entry.
func usernameOf(e entry) string {
	if e.tag != tagProfile || len(e.fields) == 0 {
		return ""
	}
	return e.fields[0]
}

func parseIDs(tokens []string) ([]int64, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	out := make([]int64, 0, len(tokens))
	for _, tok := range tokens {
		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", tok)
		}
		out = append(out, n)
	}
	return out, nil
}

func corrupt(e entry, err error) error {
	return fmt.Errorf("%w: %s %d: %v", util.ErrCorruptRecord, e.tag, e.id, err)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
