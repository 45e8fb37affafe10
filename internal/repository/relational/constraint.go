// internal/repository/relational/constraint.go
package relational

import (
	"errors"
	"fmt"
	"strings"

	"bank-console/internal/domain"
	"bank-console/internal/util"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

const pgUniqueViolation = pq.ErrorCode("23505")

type violation int

const (
	noViolation violation = iota
	primaryKeyViolation
	uniqueViolation
)

// classify recognises key violations from either driver.
func classify(err error) violation {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		if strings.HasSuffix(pgErr.Constraint, "_pkey") {
			return primaryKeyViolation
		}
		return uniqueViolation
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintPrimaryKey:
			return primaryKeyViolation
		case sqlite3.ErrConstraintUnique:
			return uniqueViolation
		}
	}
	return noViolation
}

// keyError maps a key violation on rec to the store's error vocabulary.
func keyError(rec domain.Record, err error) error {
	switch classify(err) {
	case primaryKeyViolation:
		return fmt.Errorf("%w: %s %d", util.ErrIDCollision, rec.RecordKind(), rec.RecordID())
	case uniqueViolation:
		if p, ok := rec.(domain.UserProfile); ok {
			return fmt.Errorf("%w: %q", util.ErrUsernameTaken, p.Username)
		}
	}
	return err
}
