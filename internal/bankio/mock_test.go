// internal/bankio/mock_test.go
package bankio

import (
	"context"
	"io"
	"testing"

	"bank-console/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockIO_ServesQueueThenEOF(t *testing.T) {
	ctx := context.Background()
	m := NewMockIO(domain.NewRequest(domain.RequestLogIn, "a", "b"))
	m.Queue(domain.NewRequest(domain.RequestCloseAccount, "1"))
	assert.Equal(t, 2, m.Pending())

	req, err := m.Prompt(ctx, anonymousMenu)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestLogIn, req.Kind)

	// Requests are not filtered by the offered menu.
	req, err = m.Prompt(ctx, anonymousMenu)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestCloseAccount, req.Kind)

	_, err = m.Prompt(ctx, anonymousMenu)
	assert.ErrorIs(t, err, io.EOF)
	assert.Len(t, m.Menus, 3)
	assert.Equal(t, anonymousMenu, m.Menus[0])
}

func TestMockIO_CapturesOutput(t *testing.T) {
	m := NewMockIO()
	assert.Equal(t, "", m.LastOutput())

	m.DisplayBanner("hi")
	m.DisplayText("done")
	m.DisplayAccounts([]domain.BankAccount{domain.NewPendingAccount(1, 0)})

	assert.Equal(t, "done", m.LastOutput())
	assert.True(t, m.Saw("hi"))
	assert.False(t, m.Saw("missing"))
	assert.Equal(t, bannerFrame+"\nhi\n"+bannerFrame+"\ndone", m.Transcript())
	require.Len(t, m.Accounts, 1)
	assert.Equal(t, int64(1), m.Accounts[0][0].ID)

	m.Reset()
	assert.Empty(t, m.Output)
	assert.Empty(t, m.Accounts)
}
