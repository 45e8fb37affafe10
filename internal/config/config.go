// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"bank-console/internal/util"
	"bank-console/pkg/db"

	"github.com/joho/godotenv"
)

// Backend names the persistence implementation the console runs against.
type Backend string

const (
	BackendText     Backend = "text"
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	Store      Backend
	DataFile   string
	SQLitePath string
	DB         db.Config

	SeedFile string // Empty means the embedded fixture
	SkipSeed bool

	LogLevel slog.Level
	LogFile  string // Empty means stderr
}

// LoadConfig loads configuration from environment variables, after merging
// in a .env file (or the file named by BANK_ENV_FILE) when one exists.
// Variables already set in the environment win over the file.
func LoadConfig() (*AppConfig, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	store := Backend(strings.ToLower(getenv("BANK_STORE", string(BackendText))))
	switch store {
	case BackendText, BackendSQLite, BackendPostgres:
	default:
		return nil, invalid("BANK_STORE", fmt.Errorf("unknown backend %q", store))
	}

	dbPort, err := strconv.Atoi(getenv("DB_PORT", "5432"))
	if err != nil {
		return nil, invalid("DB_PORT", err)
	}

	skipSeed := false
	if v := os.Getenv("BANK_SKIP_SEED"); v != "" {
		if skipSeed, err = strconv.ParseBool(v); err != nil {
			return nil, invalid("BANK_SKIP_SEED", err)
		}
	}

	level, err := util.ParseLogLevel(getenv("BANK_LOG_LEVEL", "warn"))
	if err != nil {
		return nil, invalid("BANK_LOG_LEVEL", err)
	}

	return &AppConfig{
		Store:      store,
		DataFile:   getenv("BANK_DATA_FILE", "bank-data.txt"),
		SQLitePath: getenv("BANK_SQLITE_PATH", "bank.sqlite"),
		DB: db.Config{
			Host:     getenv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getenv("DB_USER", "user"),
			Password: getenv("DB_PASSWORD", "password"),
			DBName:   getenv("DB_NAME", "bankdb"),
			SSLMode:  getenv("DB_SSLMODE", "disable"),
		},
		SeedFile: os.Getenv("BANK_SEED_FILE"),
		SkipSeed: skipSeed,
		LogLevel: level,
		LogFile:  os.Getenv("BANK_LOG_FILE"),
	}, nil
}

func loadEnvFile() error {
	path, explicit := os.LookupEnv("BANK_ENV_FILE")
	if !explicit || path == "" {
		path = ".env"
	}
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	// The default .env is optional; a file the operator named is not.
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return invalid("BANK_ENV_FILE", err)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func invalid(key string, err error) error {
	return fmt.Errorf("%w: %s: %w", util.ErrInvalidConfig, key, err)
}
