// internal/util/errors_test.go
package util

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreUnavailable(t *testing.T) {
	base := errors.New("disk on fire")
	err := Unavailable("write", base)

	assert.True(t, IsStoreUnavailable(err))
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "store unavailable: write: disk on fire", err.Error())

	wrapped := fmt.Errorf("deposit: %w", err)
	assert.True(t, IsStoreUnavailable(wrapped))

	again := Unavailable("outer", wrapped)
	assert.Same(t, wrapped, again)

	assert.False(t, IsStoreUnavailable(base))
	assert.True(t, IsStoreUnavailable(Unavailable("write", ErrIDCollision)))
	assert.ErrorIs(t, Unavailable("write", ErrIDCollision), ErrIDCollision)
}

func TestActionRejected(t *testing.T) {
	err := fmt.Errorf("handler: %w", Rejectf("Unable to proceed: No account exists with ID: %d", 7))

	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, "Unable to proceed: No account exists with ID: 7", rej.Message)

	_, ok = AsRejection(errors.New("plain"))
	assert.False(t, ok)
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"":      slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLogLevel("loud")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
