package commands

import (
	"encoding/json"
	"log/slog"

	"github.com/spf13/cobra"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Recompute every materialized balance and report mismatches",
		Long:  "check never corrects anything. It exits non-zero when any balance disagrees with its recompute.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadEnv()
			if err != nil {
				return err
			}
			ldg, err := openLedger(cmd.Context(), cfg, logger, false)
			if err != nil {
				return err
			}
			defer ldg.close()

			report, checkErr := ldg.services.Consistency.Check(cmd.Context())
			if report == nil {
				return checkErr
			}
			logger.Info("Consistency check finished", slog.Int("accounts", report.AccountsChecked), slog.Int("mismatches", len(report.Mismatches)))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
			return checkErr
		},
	}
}
