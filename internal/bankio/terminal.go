// internal/bankio/terminal.go
package bankio

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"bank-console/internal/domain"

	"golang.org/x/term"
)

const bannerFrame = "-----------------------------------"

// operationHeaders announce what the operator picked before its parameters are read.
var operationHeaders = map[domain.RequestKind]string{
	domain.RequestRegisterUser:       "Registering new user...",
	domain.RequestLogIn:              "Logging in...",
	domain.RequestApplyOpenAccount:   "Applying for a new account...",
	domain.RequestApproveOpenAccount: "Approving account application...",
	domain.RequestDenyOpenAccount:    "Denying account application...",
	domain.RequestCloseAccount:       "Closing account...",
	domain.RequestAddAccountOwner:    "Adding account owner...",
	domain.RequestRemoveAccountOwner: "Removing account owner...",
	domain.RequestDeposit:            "Depositing funds...",
	domain.RequestWithdraw:           "Withdrawing funds...",
	domain.RequestTransfer:           "Transferring funds...",
	domain.RequestCreateEmployee:     "Creating employee profile...",
	domain.RequestCreateAdmin:        "Creating admin profile...",
}

// Terminal implements IO over a line-oriented reader and writer.
type Terminal struct {
	in         *bufio.Reader
	out        io.Writer
	readSecret func() (string, error)
}

var _ IO = (*Terminal)(nil)

// NewTerminal reads from in and writes to out. When in is an interactive
// terminal, passwords are read without echo.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	t := &Terminal{in: bufio.NewReader(in), out: out}
	t.readSecret = t.readLine
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		t.readSecret = t.hiddenReader(func() ([]byte, error) { return term.ReadPassword(fd) })
	}
	return t
}

// hiddenReader reads a secret with readRaw, which bypasses the buffer. Lines
// already pulled into the buffer (pasted ahead of the prompt) are consumed
// from there first so input stays in order.
func (t *Terminal) hiddenReader(readRaw func() ([]byte, error)) func() (string, error) {
	return func() (string, error) {
		if t.in.Buffered() > 0 {
			return t.readLine()
		}
		b, err := readRaw()
		fmt.Fprintln(t.out)
		return strings.TrimRight(string(b), "\r\n"), err
	}
}

// Prompt shows the numbered menu and reads the choice and its parameters.
func (t *Terminal) Prompt(ctx context.Context, menu []domain.RequestKind) (domain.Request, error) {
	if err := ctx.Err(); err != nil {
		return domain.Request{}, err
	}
	if len(menu) == 0 {
		return domain.Request{}, errors.New("empty menu")
	}

	fmt.Fprintln(t.out, "Type the number matching one of the following choices:")
	for i, kind := range menu {
		fmt.Fprintf(t.out, "(%d) %s\n", i, kind)
	}
	choice, err := t.readChoice(len(menu))
	if err != nil {
		return domain.Request{}, err
	}
	kind := menu[choice]
	if header, ok := operationHeaders[kind]; ok {
		fmt.Fprintln(t.out, header)
	}

	params, err := t.readParams(kind)
	if err != nil {
		return domain.Request{}, err
	}
	return domain.NewRequest(kind, params...), nil
}

func (t *Terminal) readParams(kind domain.RequestKind) ([]string, error) {
	switch kind {
	case domain.RequestRegisterUser, domain.RequestLogIn, domain.RequestCreateEmployee, domain.RequestCreateAdmin:
		username, err := t.readToken("Enter username:", t.readLine)
		if err != nil {
			return nil, err
		}
		password, err := t.readToken("Enter password:", t.readSecret)
		if err != nil {
			return nil, err
		}
		return []string{username, password}, nil
	case domain.RequestApproveOpenAccount, domain.RequestDenyOpenAccount, domain.RequestCloseAccount:
		return t.readIDs("Enter account ID:")
	case domain.RequestAddAccountOwner, domain.RequestRemoveAccountOwner:
		return t.readIDs("Enter account ID:", "Enter user ID:")
	case domain.RequestDeposit, domain.RequestWithdraw:
		ids, err := t.readIDs("Enter account ID:")
		if err != nil {
			return nil, err
		}
		amount, err := t.readMoney("Enter amount:")
		if err != nil {
			return nil, err
		}
		return append(ids, amount), nil
	case domain.RequestTransfer:
		ids, err := t.readIDs("Enter source account ID:", "Enter destination account ID:")
		if err != nil {
			return nil, err
		}
		amount, err := t.readMoney("Enter amount:")
		if err != nil {
			return nil, err
		}
		return append(ids, amount), nil
	case domain.RequestViewTransactions:
		return t.readOptionalID("Enter an account ID to filter by, or leave blank for all:")
	}
	return nil, nil
}

// readLine returns the next line without its terminator.
func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (t *Terminal) readChoice(options int) (int, error) {
	for {
		fmt.Fprint(t.out, "Enter your choice here: ")
		line, err := t.readLine()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(t.out, ErrNotANumber)
			continue
		}
		if n < 0 || n >= options {
			fmt.Fprintln(t.out, ErrNotAnOption)
			continue
		}
		return n, nil
	}
}

func (t *Terminal) readIDs(prompts ...string) ([]string, error) {
	out := make([]string, 0, len(prompts))
	for _, prompt := range prompts {
		id, err := t.readID(prompt)
		if err != nil {
			return nil, err
		}
		out = append(out, strconv.FormatInt(id, 10))
	}
	return out, nil
}

func (t *Terminal) readID(prompt string) (int64, error) {
	for {
		fmt.Fprintln(t.out, prompt)
		line, err := t.readLine()
		if err != nil {
			return 0, err
		}
		n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err != nil {
			fmt.Fprintln(t.out, ErrNotANumber)
			continue
		}
		if n < 0 {
			fmt.Fprintln(t.out, ErrNegativeID)
			continue
		}
		return n, nil
	}
}

// readOptionalID returns no parameters for a blank line, else one account id.
func (t *Terminal) readOptionalID(prompt string) ([]string, error) {
	for {
		fmt.Fprintln(t.out, prompt)
		line, err := t.readLine()
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return nil, nil
		}
		n, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			fmt.Fprintln(t.out, ErrNotANumber)
			continue
		}
		if n < 0 {
			fmt.Fprintln(t.out, ErrNegativeID)
			continue
		}
		return []string{strconv.FormatInt(n, 10)}, nil
	}
}

// readToken reads a non-empty, whitespace-free value using read.
func (t *Terminal) readToken(prompt string, read func() (string, error)) (string, error) {
	for {
		fmt.Fprintln(t.out, prompt)
		line, err := read()
		if err != nil {
			return "", err
		}
		if line == "" {
			fmt.Fprintln(t.out, ErrNoInput)
			continue
		}
		if strings.IndexFunc(line, unicode.IsSpace) >= 0 {
			fmt.Fprintln(t.out, ErrWhitespace)
			continue
		}
		return line, nil
	}
}

// readMoney reads an amount and returns it as a cents string.
func (t *Terminal) readMoney(prompt string) (string, error) {
	for {
		fmt.Fprintln(t.out, prompt)
		line, err := t.readLine()
		if err != nil {
			return "", err
		}
		cents, err := ParseMoney(line)
		if err != nil {
			fmt.Fprintln(t.out, err)
			continue
		}
		return strconv.FormatInt(cents, 10), nil
	}
}

// DisplayText prints one message.
func (t *Terminal) DisplayText(text string) {
	fmt.Fprintln(t.out, text)
}

// DisplayBanner prints text between frame lines.
func (t *Terminal) DisplayBanner(text string) {
	fmt.Fprintln(t.out, bannerFrame)
	fmt.Fprintln(t.out, text)
	fmt.Fprintln(t.out, bannerFrame)
}

func (t *Terminal) DisplayProfiles(profiles []domain.UserProfile) {
	fmt.Fprintln(t.out, "Showing user profiles...")
	for _, p := range profiles {
		fmt.Fprintln(t.out, FormatProfile(p))
	}
}

func (t *Terminal) DisplayAccounts(accounts []domain.BankAccount) {
	fmt.Fprintln(t.out, "Showing accounts...")
	for _, a := range accounts {
		fmt.Fprintln(t.out, FormatAccount(a))
	}
}

func (t *Terminal) DisplayTransactions(records []domain.TransactionRecord) {
	fmt.Fprintln(t.out, "Showing transactions...")
	for _, r := range records {
		fmt.Fprintln(t.out, FormatTransaction(r))
	}
}
