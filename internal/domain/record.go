// internal/domain/record.go
package domain

import "slices"

// RecordKind names one of the three persistent record kinds.
type RecordKind string

const (
	KindUserProfile       RecordKind = "user_profile"
	KindBankAccount       RecordKind = "bank_account"
	KindTransactionRecord RecordKind = "transaction_record"
)

// Record is implemented by UserProfile, BankAccount and TransactionRecord.
// Stores key records by (RecordKind, RecordID).
type Record interface {
	RecordKind() RecordKind
	RecordID() int64
}

func containsID(ids []int64, id int64) bool {
	return slices.Contains(ids, id)
}

// insertID returns a new slice with id placed in ascending position.
func insertID(ids []int64, id int64) []int64 {
	if slices.Contains(ids, id) {
		return ids
	}
	out := make([]int64, 0, len(ids)+1)
	out = append(out, ids...)
	out = append(out, id)
	slices.Sort(out)
	return out
}

// removeID returns a new slice without id.
func removeID(ids []int64, id int64) []int64 {
	if !slices.Contains(ids, id) {
		return ids
	}
	out := make([]int64, 0, len(ids)-1)
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// SortIDs normalises an ownership list loaded from storage.
func SortIDs(ids []int64) []int64 {
	out := cloneIDs(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

func cloneIDs(ids []int64) []int64 {
	if ids == nil {
		return nil
	}
	return slices.Clone(ids)
}
