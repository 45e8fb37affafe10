// internal/util/errors.go
package util

import (
	"errors"
	"fmt"
)

// Common application-specific errors.
var (
	ErrNotFound          = errors.New("record not found")                  // Absent record; not a failure
	ErrIDCollision       = errors.New("record id already in use")          // Freshly allocated id was taken
	ErrUsernameTaken     = errors.New("username already in use")           // Write would duplicate a username
	ErrCorruptRecord     = errors.New("stored record is malformed")        // Backing store holds unreadable data
	ErrOwnershipMismatch = errors.New("profile and account owners differ") // Profile lists accounts the account side does not
	ErrInvalidConfig     = errors.New("invalid configuration value")
)

// StoreUnavailableError is the single failure kind raised by the persistence
// layer. It ends the console session.
type StoreUnavailableError struct {
	Op  string
	Err error
}

// Unavailable wraps err as a StoreUnavailableError for operation op.
// An error that is already a StoreUnavailableError is returned unchanged.
func Unavailable(op string, err error) error {
	var sue *StoreUnavailableError
	if errors.As(err, &sue) {
		return err
	}
	return &StoreUnavailableError{Op: op, Err: err}
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable: %s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }

// IsStoreUnavailable reports whether err is or wraps a StoreUnavailableError.
func IsStoreUnavailable(err error) bool {
	var sue *StoreUnavailableError
	return errors.As(err, &sue)
}

// ActionRejectedError is a precondition or permission violation. Its Message
// is shown to the operator verbatim.
type ActionRejectedError struct {
	Message string
}

// Reject creates an ActionRejectedError carrying msg.
func Reject(msg string) error {
	return &ActionRejectedError{Message: msg}
}

// Rejectf creates an ActionRejectedError with a formatted message.
func Rejectf(format string, args ...any) error {
	return &ActionRejectedError{Message: fmt.Sprintf(format, args...)}
}

func (e *ActionRejectedError) Error() string { return e.Message }

// AsRejection extracts the ActionRejectedError from err, if any.
func AsRejection(err error) (*ActionRejectedError, bool) {
	var are *ActionRejectedError
	if errors.As(err, &are) {
		return are, true
	}
	return nil, false
}
