// internal/domain/user.go
package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// NoID marks an unset identifier, e.g. the principal when no one is logged in
// or an unused account field on a transaction record.
const NoID int64 = -1

// Role defines what a user profile is allowed to do.
type Role string

const (
	RoleNone     Role = "NONE"
	RoleCustomer Role = "CUSTOMER"
	RoleEmployee Role = "EMPLOYEE"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole converts a stored role name into a Role.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(s)); r {
	case RoleNone, RoleCustomer, RoleEmployee, RoleAdmin:
		return r, nil
	}
	return RoleNone, fmt.Errorf("unknown role %q", s)
}

// IsStaff reports whether the role belongs to bank personnel.
func (r Role) IsStaff() bool {
	return r == RoleEmployee || r == RoleAdmin
}

// UserProfile represents a login identity and the accounts it owns.
type UserProfile struct {
	ID            int64   `db:"user_id" yaml:"id"`
	Username      string  `db:"username" yaml:"username"`
	Password      string  `db:"password" yaml:"password"`
	Role          Role    `db:"role" yaml:"role"`
	OwnedAccounts []int64 `db:"-" yaml:"owned_accounts,omitempty"` // Ascending, no duplicates
}

// NewUserProfile creates a profile that owns no accounts.
func NewUserProfile(id int64, username, password string, role Role) UserProfile {
	return UserProfile{
		ID:       id,
		Username: username,
		Password: password,
		Role:     role,
	}
}

// NoUser is the principal used when no one is logged in.
func NoUser() UserProfile {
	return UserProfile{ID: NoID, Role: RoleNone}
}

// IsNone reports whether p stands for "no one".
func (p UserProfile) IsNone() bool {
	return p.ID == NoID || p.Role == RoleNone
}

// Owns reports whether accountID is among the profile's accounts.
func (p UserProfile) Owns(accountID int64) bool {
	return containsID(p.OwnedAccounts, accountID)
}

// AddOwnedAccount records ownership of accountID; adding twice is a no-op.
func (p *UserProfile) AddOwnedAccount(accountID int64) {
	p.OwnedAccounts = insertID(p.OwnedAccounts, accountID)
}

// RemoveOwnedAccount drops accountID from the owned set.
func (p *UserProfile) RemoveOwnedAccount(accountID int64) {
	p.OwnedAccounts = removeID(p.OwnedAccounts, accountID)
}

// Clone returns a copy that shares no slices with p.
func (p UserProfile) Clone() UserProfile {
	p.OwnedAccounts = cloneIDs(p.OwnedAccounts)
	return p
}

func (p UserProfile) RecordKind() RecordKind { return KindUserProfile }
func (p UserProfile) RecordID() int64        { return p.ID }

// ValidCredential reports whether s can be used as a username or password:
// non-empty and free of whitespace.
func ValidCredential(s string) bool {
	if s == "" {
		return false
	}
	return strings.IndexFunc(s, unicode.IsSpace) < 0
}
