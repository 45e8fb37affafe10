// internal/app_test.go
package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bank-console/internal/domain"
	"bank-console/internal/repository/textfile"
	"bank-console/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for _, k := range []string{"BANK_ENV_FILE", "BANK_STORE", "BANK_DATA_FILE", "BANK_SQLITE_PATH",
		"BANK_SEED_FILE", "BANK_SKIP_SEED", "BANK_LOG_LEVEL", "BANK_LOG_FILE"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	for k, v := range env {
		t.Setenv(k, v)
	}
	t.Chdir(t.TempDir())
}

func runScript(t *testing.T, script string) (string, error) {
	t.Helper()
	ctx := context.Background()
	var out, logs bytes.Buffer
	application := NewApplicationWithIO(strings.NewReader(script), &out, &logs)
	require.NoError(t, application.Initialize(ctx))
	runErr := application.Run(ctx)
	require.NoError(t, application.Shutdown(ctx))
	return out.String(), runErr
}

func TestApplication_TextBackendSession(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "bank.txt")
	isolateEnv(t, map[string]string{"BANK_DATA_FILE": dataFile})

	// Register alice, apply for an account, quit.
	out, err := runScript(t, "1\nalice\npw\n0\n9\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome to the bank!")
	assert.Contains(t, out, "Account created, pending approval.")
	assert.Contains(t, out, "Quitting.")

	store, err := textfile.Open(dataFile)
	require.NoError(t, err)
	ctx := context.Background()
	admin, err := store.ReadUserProfile(ctx, 999)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)

	// The seeded admin holds id 999, so alice is allocated the next id.
	alice, err := store.ReadUserProfileByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), alice.ID)
	account, err := store.ReadBankAccount(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.AccountStatusPending, account.Status)
	assert.Equal(t, []int64{alice.ID}, account.Owners)
}

func TestApplication_SQLiteBackendSession(t *testing.T) {
	isolateEnv(t, map[string]string{
		"BANK_STORE":       "sqlite",
		"BANK_SQLITE_PATH": filepath.Join(t.TempDir(), "bank.sqlite"),
	})

	out, err := runScript(t, "0\nadmin\nadmin\n1\n")
	require.NoError(t, err)
	assert.Contains(t, out, "LOGGED IN AS: admin")
	assert.Contains(t, out, "Showing user profiles...")
	assert.Contains(t, out, "USERNAME: admin | ROLE: ADMIN")
}

func TestApplication_SkipSeed(t *testing.T) {
	isolateEnv(t, map[string]string{
		"BANK_DATA_FILE": filepath.Join(t.TempDir(), "bank.txt"),
		"BANK_SKIP_SEED": "true",
	})

	out, err := runScript(t, "0\nadmin\nadmin\n")
	require.NoError(t, err)
	assert.Contains(t, out, "No profile found matching username: admin")
}

func TestApplication_LogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "bank.log")
	isolateEnv(t, map[string]string{
		"BANK_DATA_FILE": filepath.Join(t.TempDir(), "bank.txt"),
		"BANK_LOG_FILE":  logFile,
		"BANK_LOG_LEVEL": "info",
	})

	_, err := runScript(t, "2\n")
	require.NoError(t, err)

	logs, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(logs), `"session_id"`)
	assert.Contains(t, string(logs), "Console session started")
}

func TestApplication_InvalidConfig(t *testing.T) {
	isolateEnv(t, map[string]string{"BANK_STORE": "mongo"})

	application := NewApplicationWithIO(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	err := application.Initialize(context.Background())
	assert.ErrorIs(t, err, util.ErrInvalidConfig)
	assert.NoError(t, application.Shutdown(context.Background()))
}

func TestApplication_RunBeforeInitialize(t *testing.T) {
	assert.Error(t, NewApplication().Run(context.Background()))
}
