package commands

import (
	"fmt"

	"github.com/SscSPs/bookkeeping_ledger/internal/platform/config"
	"github.com/SscSPs/bookkeeping_ledger/internal/platform/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	var down bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded database migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, logger, err := loadEnv()
			if err != nil {
				return err
			}
			if cfg.StoreDriver != config.StoreDriverPostgres {
				return fmt.Errorf("migrate needs STORE_DRIVER=%s, got %s", config.StoreDriverPostgres, cfg.StoreDriver)
			}
			return database.RunMigrations(cfg.DatabaseURL, down, logger)
		},
	}
	cmd.Flags().BoolVar(&down, "down", false, "roll every migration back")

	return cmd
}
