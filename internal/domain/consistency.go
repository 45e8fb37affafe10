// internal/domain/consistency.go
package domain

import (
	"errors"
	"fmt"
)

// CheckConsistency verifies the cross-record invariants of a store snapshot:
// bidirectional ownership, type matching the owner count, owners on live
// accounts, zero funds on closed accounts, and unique ids and usernames.
// All violations are joined into the returned error.
func CheckConsistency(profiles []UserProfile, accounts []BankAccount) error {
	var errs []error

	byID := make(map[int64]UserProfile, len(profiles))
	usernames := make(map[string]int64, len(profiles))
	for _, p := range profiles {
		if p.ID < 0 {
			errs = append(errs, fmt.Errorf("profile %q has negative id %d", p.Username, p.ID))
		}
		if _, dup := byID[p.ID]; dup {
			errs = append(errs, fmt.Errorf("profile id %d is used twice", p.ID))
		}
		byID[p.ID] = p
		if other, dup := usernames[p.Username]; dup {
			errs = append(errs, fmt.Errorf("username %q is shared by profiles %d and %d", p.Username, other, p.ID))
		}
		usernames[p.Username] = p.ID
	}

	accByID := make(map[int64]BankAccount, len(accounts))
	for _, a := range accounts {
		if a.ID < 0 {
			errs = append(errs, fmt.Errorf("account has negative id %d", a.ID))
		}
		if _, dup := accByID[a.ID]; dup {
			errs = append(errs, fmt.Errorf("account id %d is used twice", a.ID))
		}
		accByID[a.ID] = a

		n := len(a.Owners)
		switch {
		case a.Type == AccountTypeSingle && n != 1:
			errs = append(errs, fmt.Errorf("account %d is SINGLE with %d owners", a.ID, n))
		case a.Type == AccountTypeJoint && n < 2:
			errs = append(errs, fmt.Errorf("account %d is JOINT with %d owners", a.ID, n))
		case n == 1 && a.Type != AccountTypeSingle:
			errs = append(errs, fmt.Errorf("account %d has one owner but type %s", a.ID, a.Type))
		case n >= 2 && a.Type != AccountTypeJoint:
			errs = append(errs, fmt.Errorf("account %d has %d owners but type %s", a.ID, n, a.Type))
		}
		if (a.Status == AccountStatusOpen || a.Status == AccountStatusPending) && n == 0 {
			errs = append(errs, fmt.Errorf("account %d is %s without owners", a.ID, a.Status))
		}
		if a.Status == AccountStatusClosed && a.Funds != 0 {
			errs = append(errs, fmt.Errorf("closed account %d holds %d cents", a.ID, a.Funds))
		}
		if a.Funds < 0 {
			errs = append(errs, fmt.Errorf("account %d has negative funds %d", a.ID, a.Funds))
		}

		for _, owner := range a.Owners {
			p, ok := byID[owner]
			if !ok {
				errs = append(errs, fmt.Errorf("account %d lists unknown owner %d", a.ID, owner))
				continue
			}
			if !p.Owns(a.ID) {
				errs = append(errs, fmt.Errorf("account %d lists owner %d who does not own it", a.ID, owner))
			}
		}
	}

	for _, p := range profiles {
		for _, accID := range p.OwnedAccounts {
			a, ok := accByID[accID]
			if !ok {
				errs = append(errs, fmt.Errorf("profile %d owns unknown account %d", p.ID, accID))
				continue
			}
			if !a.HasOwner(p.ID) {
				errs = append(errs, fmt.Errorf("profile %d owns account %d which does not list them", p.ID, accID))
			}
		}
	}

	return errors.Join(errs...)
}
