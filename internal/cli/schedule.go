package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"stairs/gym-reports/internal/scheduler"

	"github.com/spf13/cobra"
)

// NewScheduleCommand creates the schedule command.
func NewScheduleCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run the weekly report scheduler",
		Long: `Runs continuously and generates weekly reports for all active
patients at the configured weekday and time (default: Sunday 20:00).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.close()

			sched, err := scheduler.New(app.cfg.Schedule, app.cfg.Reports.WeeklyDays,
				app.reportService, app.logger)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
