package cli

import (
	"stairs/gym-reports/internal/service"

	"github.com/spf13/cobra"
)

// NewFixNamesCommand creates the fix-names command.
func NewFixNamesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fix-names",
		Short: "Repair workout and report log identifiers",
		Long: `Renumbers every workout log in date order and rewrites any workout,
weekly or monthly identifier that no longer matches its convention.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.close()

			ctx := cmd.Context()

			workouts, err := app.namingService.FixWorkoutNames(ctx)
			if err != nil {
				return err
			}
			printFix(cmd, "workout logs", workouts)

			weekly, err := app.namingService.FixWeeklyNames(ctx)
			if err != nil {
				return err
			}
			printFix(cmd, "weekly reports", weekly)

			monthly, err := app.namingService.FixMonthlyNames(ctx)
			if err != nil {
				return err
			}
			printFix(cmd, "monthly reports", monthly)

			return nil
		},
	}
}

func printFix(cmd *cobra.Command, kind string, result service.FixResult) {
	cmd.Printf("%s: %d total, %d updated, %d unchanged, %d skipped, %d failed\n",
		kind, result.Total, result.Updated, result.Unchanged, result.Skipped, result.Failed)
}
