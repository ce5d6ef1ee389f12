package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/spf13/cobra"
)

func newRecurringCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "Recurring expense maintenance",
	}
	cmd.AddCommand(newRecurringGenerateCommand())
	return cmd
}

func newRecurringGenerateCommand() *cobra.Command {
	var asOf string
	var profileID string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Create the expenses that fell due up to a date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			date := domain.NormalizeDate(time.Now())
			if asOf != "" {
				parsed, err := time.Parse("2006-01-02", asOf)
				if err != nil {
					return fmt.Errorf("invalid --as-of %q: expected YYYY-MM-DD", asOf)
				}
				date = parsed
			}

			cfg, logger, err := loadEnv()
			if err != nil {
				return err
			}
			ldg, err := openLedger(cmd.Context(), cfg, logger, false)
			if err != nil {
				return err
			}
			defer ldg.close()

			var results []domain.RecurringRunResult
			var runErr error
			if profileID != "" {
				var res *domain.RecurringRunResult
				res, runErr = ldg.services.Applier.GenerateRecurringExpensesForProfile(cmd.Context(), profileID, date, systemUserID)
				if res != nil {
					results = append(results, *res)
				}
			} else {
				results, runErr = ldg.services.Applier.GenerateRecurringExpenses(cmd.Context(), date, systemUserID)
			}

			generated := 0
			for _, r := range results {
				generated += len(r.Generated)
			}
			logger.Info("Recurring run finished", slog.String("as_of", date.Format("2006-01-02")), slog.Int("profiles", len(results)), slog.Int("generated", generated))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(results); err != nil {
				return err
			}
			return runErr
		},
	}
	cmd.Flags().StringVar(&asOf, "as-of", "", "generate up to this date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&profileID, "profile", "", "only run this profile")

	return cmd
}
