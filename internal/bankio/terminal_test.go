// internal/bankio/terminal_test.go
package bankio

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"bank-console/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScriptedTerminal(script string) (*Terminal, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewTerminal(strings.NewReader(script), out), out
}

var anonymousMenu = []domain.RequestKind{domain.RequestLogIn, domain.RequestRegisterUser, domain.RequestQuit}

func TestTerminal_PromptLogIn(t *testing.T) {
	term, out := newScriptedTerminal("x\n5\n0\nalice\nsecret\n")

	req, err := term.Prompt(context.Background(), anonymousMenu)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestLogIn, req.Kind)
	assert.Equal(t, []string{"alice", "secret"}, req.Params)

	text := out.String()
	assert.Contains(t, text, "Type the number matching one of the following choices:\n(0) LOG_IN\n(1) REGISTER_USER\n(2) QUIT\n")
	assert.Contains(t, text, "Enter your choice here: ")
	assert.Contains(t, text, string(ErrNotANumber))
	assert.Contains(t, text, string(ErrNotAnOption))
	assert.Contains(t, text, "Logging in...")
}

func TestTerminal_HiddenSecretPrefersBufferedInput(t *testing.T) {
	term, _ := newScriptedTerminal("0\nalice\nsecret\n")
	term.readSecret = term.hiddenReader(func() ([]byte, error) {
		t.Fatal("raw read while buffered input is pending")
		return nil, nil
	})

	req, err := term.Prompt(context.Background(), anonymousMenu)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "secret"}, req.Params)
}

func TestTerminal_HiddenSecretReadsRawWhenBufferEmpty(t *testing.T) {
	term, out := newScriptedTerminal("0\nalice\n")
	calls := 0
	term.readSecret = term.hiddenReader(func() ([]byte, error) {
		calls++
		return []byte("hidden"), nil
	})

	req, err := term.Prompt(context.Background(), anonymousMenu)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"alice", "hidden"}, req.Params)
	assert.True(t, strings.HasSuffix(out.String(), "Enter password:\n\n"))
}

func TestTerminal_PromptQuitHasNoParams(t *testing.T) {
	term, _ := newScriptedTerminal("2\n")

	req, err := term.Prompt(context.Background(), anonymousMenu)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestQuit, req.Kind)
	assert.Empty(t, req.Params)
}

func TestTerminal_CredentialsRejectBlankAndWhitespace(t *testing.T) {
	term, out := newScriptedTerminal("1\n\nbob smith\nbob\npass word\npw\n")

	req, err := term.Prompt(context.Background(), anonymousMenu)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestRegisterUser, req.Kind)
	assert.Equal(t, []string{"bob", "pw"}, req.Params)
	assert.Contains(t, out.String(), string(ErrNoInput))
	assert.Equal(t, 2, strings.Count(out.String(), string(ErrWhitespace)))
	assert.Contains(t, out.String(), "Registering new user...")
}

func TestTerminal_PromptDeposit(t *testing.T) {
	term, out := newScriptedTerminal("0\n-1\n3\n1.234\n$12.50\n")

	req, err := term.Prompt(context.Background(), []domain.RequestKind{domain.RequestDeposit})
	require.NoError(t, err)
	assert.Equal(t, domain.RequestDeposit, req.Kind)
	assert.Equal(t, []string{"3", "1250"}, req.Params)
	assert.Contains(t, out.String(), string(ErrNegativeID))
	assert.Contains(t, out.String(), string(ErrTooManyDecimals))
}

func TestTerminal_PromptTransfer(t *testing.T) {
	term, _ := newScriptedTerminal("0\n1\n2\n0.99\n")

	req, err := term.Prompt(context.Background(), []domain.RequestKind{domain.RequestTransfer})
	require.NoError(t, err)
	assert.Equal(t, domain.NewRequest(domain.RequestTransfer, "1", "2", "99"), req)
}

func TestTerminal_PromptOwnerChange(t *testing.T) {
	term, _ := newScriptedTerminal("0\n4\n7\n")

	req, err := term.Prompt(context.Background(), []domain.RequestKind{domain.RequestRemoveAccountOwner})
	require.NoError(t, err)
	assert.Equal(t, []string{"4", "7"}, req.Params)
}

func TestTerminal_PromptViewTransactionsFilter(t *testing.T) {
	menu := []domain.RequestKind{domain.RequestViewTransactions}

	term, _ := newScriptedTerminal("0\n\n")
	req, err := term.Prompt(context.Background(), menu)
	require.NoError(t, err)
	assert.Empty(t, req.Params)

	term, _ = newScriptedTerminal("0\nabc\n 4 \n")
	req, err = term.Prompt(context.Background(), menu)
	require.NoError(t, err)
	assert.Equal(t, []string{"4"}, req.Params)
}

func TestTerminal_EndOfInput(t *testing.T) {
	term, _ := newScriptedTerminal("")
	_, err := term.Prompt(context.Background(), anonymousMenu)
	assert.ErrorIs(t, err, io.EOF)

	// Input ends between the username and the password.
	term, _ = newScriptedTerminal("0\nalice")
	_, err = term.Prompt(context.Background(), anonymousMenu)
	assert.ErrorIs(t, err, io.EOF)
}

func TestTerminal_LastLineWithoutNewline(t *testing.T) {
	term, _ := newScriptedTerminal("2")

	req, err := term.Prompt(context.Background(), anonymousMenu)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestQuit, req.Kind)
}

func TestTerminal_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	term, _ := newScriptedTerminal("2\n")
	_, err := term.Prompt(ctx, anonymousMenu)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTerminal_Displays(t *testing.T) {
	term, out := newScriptedTerminal("")

	term.DisplayBanner("Welcome")
	term.DisplayText("hello")
	term.DisplayProfiles([]domain.UserProfile{domain.NewUserProfile(0, "alice", "pw", domain.RoleCustomer)})
	term.DisplayAccounts([]domain.BankAccount{domain.NewPendingAccount(0, 0)})

	want := bannerFrame + "\nWelcome\n" + bannerFrame + "\n" +
		"hello\n" +
		"Showing user profiles...\nID: 0 | USERNAME: alice | ROLE: CUSTOMER | ACCOUNTS: ---\n" +
		"Showing accounts...\nID: 0 | STATUS: PENDING | TYPE: SINGLE | FUNDS: $0.00 | OWNERS: 0\n"
	assert.Equal(t, want, out.String())
}
