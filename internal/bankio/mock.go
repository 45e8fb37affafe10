// internal/bankio/mock.go
package bankio

import (
	"context"
	"io"
	"slices"
	"strings"

	"bank-console/internal/domain"
)

// MockIO is an in-memory IO for driving the engine from tests. Requests are
// served in queue order; everything displayed is captured.
type MockIO struct {
	queue []domain.Request

	Menus        [][]domain.RequestKind
	Output       []string
	Profiles     [][]domain.UserProfile
	Accounts     [][]domain.BankAccount
	Transactions [][]domain.TransactionRecord
}

var _ IO = (*MockIO)(nil)

// NewMockIO returns a MockIO with reqs queued.
func NewMockIO(reqs ...domain.Request) *MockIO {
	return &MockIO{queue: slices.Clone(reqs)}
}

// Queue appends requests.
func (m *MockIO) Queue(reqs ...domain.Request) {
	m.queue = append(m.queue, reqs...)
}

// Pending reports how many requests have not been served yet.
func (m *MockIO) Pending() int {
	return len(m.queue)
}

// Prompt records the menu and pops the next request, or returns io.EOF.
func (m *MockIO) Prompt(ctx context.Context, menu []domain.RequestKind) (domain.Request, error) {
	if err := ctx.Err(); err != nil {
		return domain.Request{}, err
	}
	m.Menus = append(m.Menus, slices.Clone(menu))
	if len(m.queue) == 0 {
		return domain.Request{}, io.EOF
	}
	req := m.queue[0]
	m.queue = m.queue[1:]
	return req, nil
}

func (m *MockIO) DisplayText(text string) {
	m.Output = append(m.Output, text)
}

func (m *MockIO) DisplayBanner(text string) {
	m.Output = append(m.Output, bannerFrame, text, bannerFrame)
}

func (m *MockIO) DisplayProfiles(profiles []domain.UserProfile) {
	m.Profiles = append(m.Profiles, slices.Clone(profiles))
}

func (m *MockIO) DisplayAccounts(accounts []domain.BankAccount) {
	m.Accounts = append(m.Accounts, slices.Clone(accounts))
}

func (m *MockIO) DisplayTransactions(records []domain.TransactionRecord) {
	m.Transactions = append(m.Transactions, slices.Clone(records))
}

// LastOutput returns the most recent text line, or "".
func (m *MockIO) LastOutput() string {
	if len(m.Output) == 0 {
		return ""
	}
	return m.Output[len(m.Output)-1]
}

// Saw reports whether text was displayed verbatim.
func (m *MockIO) Saw(text string) bool {
	return slices.Contains(m.Output, text)
}

// Transcript joins all text output, one line per message.
func (m *MockIO) Transcript() string {
	return strings.Join(m.Output, "\n")
}

// Reset drops captured output, keeping the queue.
func (m *MockIO) Reset() {
	m.Menus, m.Output = nil, nil
	m.Profiles, m.Accounts, m.Transactions = nil, nil, nil
}
