package cli

import (
	"fmt"

	"stairs/gym-reports/internal/service"

	"github.com/spf13/cobra"
)

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check every log identifier against its naming convention",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.close()

			result, err := app.namingService.VerifyAll(cmd.Context())
			if err != nil {
				return err
			}

			printVerify(cmd, "assessment logs", result.Assessments)
			printVerify(cmd, "workout logs", result.Workouts)
			printVerify(cmd, "weekly reports", result.Weekly)
			printVerify(cmd, "monthly reports", result.Monthly)

			if !result.AllCorrect() {
				return fmt.Errorf("naming verification found invalid identifiers")
			}
			cmd.Println("all identifiers follow their naming conventions")
			return nil
		},
	}
}

func printVerify(cmd *cobra.Command, kind string, result service.VerifyKindResult) {
	cmd.Printf("%s: %d/%d correct\n", kind, result.Correct, result.Checked)
	for _, id := range result.Invalid {
		cmd.Printf("  invalid: %q\n", id)
	}
}
