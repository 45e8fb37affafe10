// internal/seed/seed.go

// Package seed loads fixture records and writes them into an empty store.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"bank-console/internal/domain"
	"bank-console/internal/repository"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultFixture []byte

// Fixture is a set of records to preload.
type Fixture struct {
	Profiles     []domain.UserProfile       `yaml:"profiles"`
	Accounts     []domain.BankAccount       `yaml:"accounts"`
	Transactions []domain.TransactionRecord `yaml:"transactions"`
}

// Default returns the built-in fixture holding the bootstrap administrator.
func Default() (Fixture, error) {
	return parse(defaultFixture, "default fixture")
}

// Load reads a fixture from a YAML file.
func Load(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	return parse(data, path)
}

func parse(data []byte, source string) (Fixture, error) {
	var f Fixture
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Fixture{}, fmt.Errorf("parse %s: %w", source, err)
	}
	if err := f.Validate(); err != nil {
		return Fixture{}, fmt.Errorf("%s: %w", source, err)
	}
	return f, nil
}

// Validate checks enum values and credentials, then the cross-record
// ownership invariants.
func (f Fixture) Validate() error {
	var errs []error
	for _, p := range f.Profiles {
		if _, err := domain.ParseRole(string(p.Role)); err != nil {
			errs = append(errs, fmt.Errorf("profile %d: %w", p.ID, err))
		}
		if !domain.ValidCredential(p.Username) || !domain.ValidCredential(p.Password) {
			errs = append(errs, fmt.Errorf("profile %d: username and password must be non-empty without whitespace", p.ID))
		}
	}
	for _, a := range f.Accounts {
		if _, err := domain.ParseAccountStatus(string(a.Status)); err != nil {
			errs = append(errs, fmt.Errorf("account %d: %w", a.ID, err))
		}
		if _, err := domain.ParseAccountType(string(a.Type)); err != nil {
			errs = append(errs, fmt.Errorf("account %d: %w", a.ID, err))
		}
	}
	for _, t := range f.Transactions {
		if _, err := domain.ParseTransactionKind(string(t.Kind)); err != nil {
			errs = append(errs, fmt.Errorf("transaction %d: %w", t.ID, err))
		}
		if t.ID < 0 {
			errs = append(errs, fmt.Errorf("transaction has negative id %d", t.ID))
		}
	}
	if err := domain.CheckConsistency(f.Profiles, f.Accounts); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Records flattens the fixture for a single Write call. Transactions without
// a time are stamped with stamp.
func (f Fixture) Records(stamp string) []domain.Record {
	records := make([]domain.Record, 0, len(f.Profiles)+len(f.Accounts)+len(f.Transactions))
	for _, p := range f.Profiles {
		p.OwnedAccounts = domain.SortIDs(p.OwnedAccounts)
		records = append(records, p)
	}
	for _, a := range f.Accounts {
		a.Owners = domain.SortIDs(a.Owners)
		records = append(records, a)
	}
	for _, t := range f.Transactions {
		if t.Time == "" {
			t.Time = stamp
		}
		records = append(records, t)
	}
	return records
}

// Apply writes f into store unless the store already holds profiles.
// It reports whether anything was written.
func Apply(ctx context.Context, store repository.Store, f Fixture, logger *slog.Logger) (bool, error) {
	top, err := store.HighestUserID(ctx)
	if err != nil {
		return false, err
	}
	if top != domain.NoID {
		logger.Debug("Store already populated; skipping seed", "highest_user_id", top)
		return false, nil
	}
	if err := f.Validate(); err != nil {
		return false, fmt.Errorf("seed store: %w", err)
	}
	records := f.Records(time.Now().UTC().Format(time.RFC3339))
	if len(records) == 0 {
		return false, nil
	}
	if err := store.Write(ctx, records...); err != nil {
		return false, fmt.Errorf("seed store: %w", err)
	}
	logger.Info("Seeded empty store", "profiles", len(f.Profiles), "accounts", len(f.Accounts), "transactions", len(f.Transactions))
	return true, nil
}
