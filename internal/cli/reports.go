package cli

import (
	"fmt"

	"stairs/gym-reports/internal/service"

	"github.com/spf13/cobra"
)

// NewWeeklyCommand creates the weekly report generation command.
func NewWeeklyCommand(rootOpts *RootOptions) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Generate weekly reports for all active patients",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.close()

			if days <= 0 {
				days = app.cfg.Reports.WeeklyDays
			}

			result := app.reportService.GenerateWeeklyForAll(cmd.Context(), days)
			printBatch(cmd, "weekly", result)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "look-back window in days (default from config)")
	return cmd
}

// NewMonthlyCommand creates the monthly report generation command.
func NewMonthlyCommand(rootOpts *RootOptions) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Generate monthly reports for all active patients",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.close()

			if days <= 0 {
				days = app.cfg.Reports.MonthlyDays
			}

			result := app.reportService.GenerateMonthlyForAll(cmd.Context(), days)
			printBatch(cmd, "monthly", result)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "look-back window in days (default from config)")
	return cmd
}

func printBatch(cmd *cobra.Command, kind string, result service.BatchResult) {
	cmd.Printf("%s report run %s finished\n", kind, result.RunID)
	cmd.Printf("  created: %d\n  skipped: %d\n  failed:  %d\n",
		result.Created, result.Skipped, result.Failed)
	for _, o := range result.Outcomes {
		line := fmt.Sprintf("  - %s: %s", o.PatientName, o.Outcome)
		if o.ReportID != "" {
			line += " (" + o.ReportID + ")"
		}
		if o.Err != nil {
			line += ": " + o.Err.Error()
		}
		cmd.Println(line)
	}
}
