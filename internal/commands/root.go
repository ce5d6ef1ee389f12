package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/services"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_ledger/internal/platform/config"
	"github.com/SscSPs/bookkeeping_ledger/internal/platform/database"
	"github.com/SscSPs/bookkeeping_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/bookkeeping_ledger/internal/repositories/memory"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags.
var Version = "dev"

// systemUserID is recorded as the actor of work started from the command line.
const systemUserID = "system"

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "ledger",
		Short:   "Bookkeeping ledger for small businesses",
		Version: Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newRecurringCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newTokenCommand())

	return rootCmd
}

// loadEnv reads the configuration and installs the process logger:
// JSON in production, text otherwise.
func loadEnv() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, nil)
	if cfg.IsProduction {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// ledger is a wired service container plus the resources it holds.
type ledger struct {
	services *portssvc.ServiceContainer
	close    func()
}

// openLedger builds the services on the configured store.
// Postgres is migrated to the latest version first when migrate is set.
func openLedger(ctx context.Context, cfg *config.Config, logger *slog.Logger, migrate bool) (*ledger, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Warn("Using the in-memory store, data is lost on exit")
		store := memory.NewStore()
		return &ledger{
			services: services.NewServiceContainer(cfg, store.Repositories(), store),
			close:    func() {},
		}, nil
	}

	if migrate {
		if err := database.RunMigrations(cfg.DatabaseURL, false, logger); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	logger.Info("Database connection pool established.")
	return &ledger{
		services: services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool), pgsql.NewTransactionManager(pool)),
		close:    pool.Close,
	}, nil
}
