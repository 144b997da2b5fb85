// internal/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "mybudget/internal/api"
	"mybudget/internal/api/handler"
	"mybudget/internal/config"
	"mybudget/internal/events"
	"mybudget/internal/repository"
	"mybudget/internal/repository/postgres"
	"mybudget/internal/service"
	"mybudget/internal/util"
	"mybudget/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	EnvelopeRepository    repository.EnvelopeRepository
	TransactionRepository repository.TransactionRepository

	// Services
	EnvelopeService service.EnvelopeService
	LedgerService   service.LedgerService

	Publisher events.Publisher

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
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
	util.InitLogger(cfg.LogLevel, cfg.LogFormat)
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Apply migrations
	if cfg.AutoMigrate {
		if err := db.MigrateUp(cfg.DB); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		app.Logger.Info("Database migrations applied.")
	}

	// 4. Connect to Database
	database, err := db.NewPostgresDB(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.",
		"host", cfg.DB.Host,
		"database", cfg.DB.DBName)

	// 5. Ledger events
	app.Publisher = app.newPublisher()

	// 6. Initialize Repositories
	app.EnvelopeRepository = postgres.NewEnvelopeRepository()
	app.TransactionRepository = postgres.NewTransactionRepository()
	app.Logger.Info("Repositories initialized.")

	// 7. Initialize Services
	app.EnvelopeService = service.NewEnvelopeService(app.DB, app.EnvelopeRepository)
	app.LedgerService = service.NewLedgerService(
		app.DB, // This is the DBTxBeginner
		app.DB, // This is the DBExecutor
		app.EnvelopeRepository,
		app.TransactionRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		service.WithLockTimeout(cfg.LockTimeout),
		service.WithPublisher(app.Publisher),
		service.WithLogger(app.Logger.With("component", "ledger")),
	)
	app.Logger.Info("Services initialized.")

	// 8. Initialize HTTP Handlers and Router
	envelopeHandler := handler.NewEnvelopeHandler(app.EnvelopeService, app.Logger)
	transactionHandler := handler.NewTransactionHandler(app.LedgerService, app.Logger)
	app.HTTPHandler = router.NewRouter(envelopeHandler, transactionHandler, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// newPublisher connects to the broker when one is configured. Events are
// best-effort, so a broker that cannot be reached only disables them.
func (app *Application) newPublisher() events.Publisher {
	if app.Config.AMQPURL == "" {
		app.Logger.Info("Ledger events disabled, no AMQP_URL set.")
		return events.NopPublisher{}
	}
	publisher, err := events.NewAMQPPublisher(app.Config.AMQPURL, app.Config.AMQPExchange)
	if err != nil {
		app.Logger.Warn("Ledger events disabled, broker unavailable", "error", err)
		return events.NopPublisher{}
	}
	app.Logger.Info("Ledger events enabled.", "exchange", app.Config.AMQPExchange)
	return publisher
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	var errs []error
	if app.Publisher != nil {
		if err := app.Publisher.Close(); err != nil {
			app.Logger.Error("Failed to close event publisher", "error", err)
			errs = append(errs, fmt.Errorf("failed to close event publisher: %w", err))
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			errs = append(errs, fmt.Errorf("failed to close database connection: %w", err))
		} else {
			app.Logger.Info("Database connection closed.")
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
