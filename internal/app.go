// internal/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"bank-console/internal/bankio"
	"bank-console/internal/config"
	"bank-console/internal/repository"
	"bank-console/internal/repository/relational"
	"bank-console/internal/repository/textfile"
	"bank-console/internal/seed"
	"bank-console/internal/service"
	"bank-console/internal/util"
	"bank-console/pkg/db"

	"github.com/google/uuid"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	Store  repository.Store
	IO     bankio.IO
	Engine *service.Engine

	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	logFile *os.File
}

// NewApplication creates an Application bound to the process streams.
func NewApplication() *Application {
	return NewApplicationWithIO(os.Stdin, os.Stdout, os.Stderr)
}

// NewApplicationWithIO creates an Application reading operator input from
// stdin and writing the console to stdout. Logs go to stderr unless
// BANK_LOG_FILE is set.
func NewApplicationWithIO(stdin io.Reader, stdout, stderr io.Writer) *Application {
	return &Application{stdin: stdin, stdout: stdout, stderr: stderr}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	logOut := app.stderr
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		app.logFile = f
		logOut = f
	}
	util.InitLogger(logOut, cfg.LogLevel)
	app.Logger = util.GetLogger().With("session_id", uuid.NewString())
	app.Logger.Info("Application configuration loaded successfully.", "store", cfg.Store)

	// 3. Open the persistence backend
	store, err := app.openStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	app.Store = store
	app.Logger.Info("Store opened.", "store", store.Name())

	// 4. Seed an empty store
	if err := app.seedStore(ctx); err != nil {
		return fmt.Errorf("failed to seed store: %w", err)
	}

	// 5. Initialize the console
	app.IO = bankio.NewTerminal(app.stdin, app.stdout)
	app.Engine = service.NewEngine(app.IO, app.Store, service.WithLogger(app.Logger))
	app.Logger.Info("Console initialized.")

	return nil
}

func (app *Application) openStore(ctx context.Context) (repository.Store, error) {
	switch app.Config.Store {
	case config.BackendText:
		return textfile.Open(app.Config.DataFile)
	case config.BackendSQLite:
		conn, err := db.OpenSQLite(ctx, app.Config.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := db.RunMigrations(conn, app.Logger); err != nil {
			_ = conn.Close()
			return nil, err
		}
		return relational.New(conn, "sqlite "+app.Config.SQLitePath), nil
	case config.BackendPostgres:
		conn, err := db.NewPostgresDB(ctx, app.Config.DB)
		if err != nil {
			return nil, err
		}
		if err := db.RunMigrations(conn, app.Logger); err != nil {
			_ = conn.Close()
			return nil, err
		}
		return relational.New(conn, "postgres "+app.Config.DB.String()), nil
	}
	return nil, fmt.Errorf("%w: unknown backend %q", util.ErrInvalidConfig, app.Config.Store)
}

func (app *Application) seedStore(ctx context.Context) error {
	if app.Config.SkipSeed {
		app.Logger.Info("Seeding disabled.")
		return nil
	}
	fixture, err := seed.Default()
	if app.Config.SeedFile != "" {
		fixture, err = seed.Load(app.Config.SeedFile)
	}
	if err != nil {
		return err
	}
	_, err = seed.Apply(ctx, app.Store, fixture, app.Logger)
	return err
}

// Run drives the console session until QUIT, end of input or store failure.
func (app *Application) Run(ctx context.Context) error {
	if app.Engine == nil {
		return errors.New("application not initialized")
	}
	return app.Engine.Start(ctx)
}

// Shutdown releases the store and the log file.
func (app *Application) Shutdown(ctx context.Context) error {
	var errs []error
	if app.Store != nil {
		if err := app.Store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close store: %w", err))
		}
	}
	if app.Logger != nil {
		app.Logger.Info("Application shut down.")
	}
	if app.logFile != nil {
		if err := app.logFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close log file: %w", err))
		}
	}
	return errors.Join(errs...)
}
