// internal/domain/consistency_test.go
package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func consistentSnapshot() ([]UserProfile, []BankAccount) {
	alice := NewUserProfile(0, "alice", "pw", RoleCustomer)
	bob := NewUserProfile(1, "bob", "pw", RoleCustomer)
	admin := NewUserProfile(999, "admin", "admin", RoleAdmin)

	single := NewPendingAccount(0, alice.ID)
	single.Status = AccountStatusOpen
	single.Funds = 100
	alice.AddOwnedAccount(single.ID)

	joint := NewPendingAccount(1, alice.ID)
	joint.AddOwner(bob.ID)
	alice.AddOwnedAccount(joint.ID)
	bob.AddOwnedAccount(joint.ID)

	return []UserProfile{alice, bob, admin}, []BankAccount{single, joint}
}

func TestCheckConsistency(t *testing.T) {
	t.Run("consistent snapshot passes", func(t *testing.T) {
		profiles, accounts := consistentSnapshot()
		assert.NoError(t, CheckConsistency(profiles, accounts))
	})

	t.Run("empty snapshot passes", func(t *testing.T) {
		assert.NoError(t, CheckConsistency(nil, nil))
	})

	tests := []struct {
		name    string
		corrupt func(p []UserProfile, a []BankAccount) ([]UserProfile, []BankAccount)
		want    string
	}{
		{
			name: "owner missing the back reference",
			corrupt: func(p []UserProfile, a []BankAccount) ([]UserProfile, []BankAccount) {
				p[1].OwnedAccounts = nil
				return p, a
			},
			want: "does not own it",
		},
		{
			name: "profile claims an account that does not list them",
			corrupt: func(p []UserProfile, a []BankAccount) ([]UserProfile, []BankAccount) {
				p[2].AddOwnedAccount(0)
				return p, a
			},
			want: "does not list them",
		},
		{
			name: "joint account with one owner",
			corrupt: func(p []UserProfile, a []BankAccount) ([]UserProfile, []BankAccount) {
				a[0].Type = AccountTypeJoint
				return p, a
			},
			want: "JOINT with 1 owners",
		},
		{
			name: "closed account holding funds",
			corrupt: func(p []UserProfile, a []BankAccount) ([]UserProfile, []BankAccount) {
				a[0].Status = AccountStatusClosed
				return p, a
			},
			want: "closed account 0 holds 100 cents",
		},
		{
			name: "duplicate username",
			corrupt: func(p []UserProfile, a []BankAccount) ([]UserProfile, []BankAccount) {
				p[1].Username = "alice"
				return p, a
			},
			want: `username "alice" is shared`,
		},
		{
			name: "unknown owner",
			corrupt: func(p []UserProfile, a []BankAccount) ([]UserProfile, []BankAccount) {
				a[0].Owners = []int64{42}
				return p, a
			},
			want: "unknown owner 42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles, accounts := consistentSnapshot()
			profiles, accounts = tt.corrupt(profiles, accounts)
			err := CheckConsistency(profiles, accounts)
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.want)
			}
		})
	}
}
