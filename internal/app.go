// internal/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/viper"

	"expense-tracker/internal/cli"
	"expense-tracker/internal/config"
	"expense-tracker/internal/ofximport"
	"expense-tracker/internal/render"
	"expense-tracker/internal/repository"
	"expense-tracker/internal/repository/sqlstore"
	"expense-tracker/internal/service"
	"expense-tracker/internal/util"
	"expense-tracker/internal/workflow"
	"expense-tracker/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Persistence
	TransactionStore   repository.TransactionStore
	TransactionService service.TransactionService

	// Console
	Console  *cli.Console
	Renderer *render.Renderer
	Workflow *workflow.Workflow
	Shell    *workflow.Shell
	Importer *ofximport.Importer

	in        io.Reader
	out       io.Writer
	logCloser io.Closer
}

// NewApplication creates a new Application reading from in and writing to out.
func NewApplication(in io.Reader, out io.Writer) *Application {
	return &Application{Logger: slog.Default(), in: in, out: out}
}

// Initialize initializes all application components. A failed database
// connection is reported as util.ErrConnection.
func (app *Application) Initialize(ctx context.Context, v *viper.Viper) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig(v)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	closer, err := util.InitLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.logCloser = closer
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded", "driver", cfg.DB.Driver)

	// 3. Connect to Database
	database, err := db.NewDB(ctx, cfg.DB)
	if err != nil {
		app.Logger.Error("Database connection failed", "driver", cfg.DB.Driver, "error", err)
		return fmt.Errorf("%w: %w", util.ErrConnection, err)
	}
	app.DB = database
	app.Logger.Info("Database connection established")

	// 4. Initialize Repository and Service
	app.TransactionStore = sqlstore.NewTransactionStore()
	app.TransactionService = service.NewTransactionService(
		app.DB, // This is the DBTxBeginner
		app.DB, // This is the DBExecutor
		app.TransactionStore,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		app.Logger,
	)

	// 5. Initialize Console and Workflows
	app.Console = cli.NewConsole(app.in, app.out)
	app.Renderer = render.NewRenderer(app.Console.Writer(), cfg.Display.CurrencySymbol)
	app.Workflow = workflow.New(app.TransactionService, app.Console, app.Renderer, app.Logger)
	app.Shell = workflow.NewShell(app.Workflow, app.Console, app.Logger)
	app.Importer = ofximport.NewImporter(app.TransactionService, app.Logger)

	return nil
}

// Shutdown releases the database connection and the log file. It is safe to
// call more than once.
func (app *Application) Shutdown(ctx context.Context) error {
	var errs []error
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			errs = append(errs, fmt.Errorf("failed to close database connection: %w", err))
		} else {
			app.Logger.Info("Database connection closed")
		}
		app.DB = nil
	}
	if app.logCloser != nil {
		if err := app.logCloser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close log file: %w", err))
		}
		app.logCloser = nil
	}
	return errors.Join(errs...)
}

// Run initializes an application, hands it to fn and shuts it down on every
// exit path, including a panic inside fn.
func Run(ctx context.Context, v *viper.Viper, in io.Reader, out io.Writer, fn func(*Application) error) (err error) {
	application := NewApplication(in, out)
	defer func() {
		if shutdownErr := application.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil && err == nil {
			err = shutdownErr
		}
	}()

	if err := application.Initialize(ctx, v); err != nil {
		return err
	}
	return fn(application)
}
