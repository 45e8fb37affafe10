// cmd/console/root_test.go
package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCommandRejectsArguments(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"extra"})
	assert.Error(t, cmd.Execute())

	assert.Equal(t, 1, execute([]string{"extra"}))
}

func TestRootCommandHasNoFlags(t *testing.T) {
	cmd := newRootCmd()
	assert.False(t, cmd.HasAvailableLocalFlags())
}
