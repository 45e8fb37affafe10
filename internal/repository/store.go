// internal/repository/store.go
package repository

import (
	"context"
	"fmt"
	"io"

	"bank-console/internal/domain"
	"bank-console/internal/util"
)

// Writer persists records.
type Writer interface {
	// Write inserts or replaces each record keyed by (kind, id). All records
	// of one call become visible together or not at all. Records wrapped
	// with Fresh must not exist yet; a clash fails with util.ErrIDCollision.
	Write(ctx context.Context, records ...domain.Record) error
}

// Store is the persistence port the console runs against.
// Every failure it returns is a *util.StoreUnavailableError, except
// util.ErrNotFound from by-id and by-username reads.
type Store interface {
	ProfileRepository
	AccountRepository
	TransactionRepository
	Writer
	io.Closer

	// Name describes the backing resource for logs.
	Name() string
}

type freshRecord struct {
	domain.Record
}

// Fresh marks a record whose id was just allocated, so the store rejects
// the write instead of overwriting should another writer have taken the id.
func Fresh(r domain.Record) domain.Record {
	if _, ok := r.(freshRecord); ok {
		return r
	}
	return freshRecord{Record: r}
}

// Unwrap returns the underlying record and whether it was marked Fresh.
func Unwrap(r domain.Record) (domain.Record, bool) {
	if f, ok := r.(freshRecord); ok {
		return f.Record, true
	}
	return r, false
}

// Pending is one record of a Write call after unwrapping.
type Pending struct {
	Record domain.Record
	Fresh  bool
}

// Prepare unwraps records, rejects unknown record types, and orders them
// profiles first, then accounts, then transactions, keeping call order within
// a kind. A record appearing twice in one call keeps its last value.
func Prepare(records []domain.Record) ([]Pending, error) {
	buckets := map[domain.RecordKind][]Pending{}
	seen := map[domain.RecordKind]map[int64]int{}
	for _, r := range records {
		rec, fresh := Unwrap(r)
		switch v := rec.(type) {
		case *domain.UserProfile:
			rec = *v
		case *domain.BankAccount:
			rec = *v
		case *domain.TransactionRecord:
			rec = *v
		case domain.UserProfile, domain.BankAccount, domain.TransactionRecord:
		default:
			return nil, util.Unavailable("write", fmt.Errorf("unsupported record type %T", rec))
		}
		if rec.RecordID() < 0 {
			return nil, util.Unavailable("write", fmt.Errorf("%s has negative id %d", rec.RecordKind(), rec.RecordID()))
		}
		kind := rec.RecordKind()
		if seen[kind] == nil {
			seen[kind] = map[int64]int{}
		}
		if i, dup := seen[kind][rec.RecordID()]; dup {
			buckets[kind][i] = Pending{Record: rec, Fresh: fresh || buckets[kind][i].Fresh}
			continue
		}
		seen[kind][rec.RecordID()] = len(buckets[kind])
		buckets[kind] = append(buckets[kind], Pending{Record: rec, Fresh: fresh})
	}

	out := make([]Pending, 0, len(records))
	for _, kind := range []domain.RecordKind{domain.KindUserProfile, domain.KindBankAccount, domain.KindTransactionRecord} {
		out = append(out, buckets[kind]...)
	}
	return out, nil
}
