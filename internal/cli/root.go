package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Verbose    bool
}

// NewRootCommand creates the root command for the gym-reports CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "gym-reports",
		Short: "Stairs Gym reporting pipeline",
		Long: `Generates weekly and monthly patient progress reports from the
gym's record store, repairs log naming conventions, and delivers reports by
email and WhatsApp.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", ".", "directory containing config.yaml")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose logging")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewWeeklyCommand(opts))
	cmd.AddCommand(NewMonthlyCommand(opts))
	cmd.AddCommand(NewFixNamesCommand(opts))
	cmd.AddCommand(NewVerifyCommand(opts))
	cmd.AddCommand(NewScheduleCommand(opts))

	return cmd
}
