package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwaldner/tetra/internal/audit"
)

// addAuditCommands adds the numerical audit commands.
func addAuditCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newAuditCmd(app))
}

func newAuditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Run the numerical invariant audit",
		Long: `Run every registered invariant check against the pricing kernel:
payoff identities, price bounds, put-call parity, Greek bounds, and the
implied volatility round trip.

The command exits non-zero when any case violates an invariant, so it
slots into CI pipelines. Pass --report to also write the JSON and
markdown report files.`,
		Example: `  tetra audit
  tetra audit --report
  tetra audit --list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			if list, _ := cmd.Flags().GetBool("list"); list {
				checks := app.Auditor.Checks()
				if output.IsJSON() {
					return output.JSON(checks)
				}
				output.Bold("Registered checks")
				output.Println()
				for _, c := range checks {
					output.Printf("  %-18s %s\n", output.Cyan(c.Name), c.Description)
				}
				return nil
			}

			var recorder *audit.Recorder
			if report, _ := cmd.Flags().GetBool("report"); report {
				recorder = audit.NewRecorder()
				defer recorder.Close()
			}

			rep := app.Auditor.RunAll(recorder)

			if output.IsJSON() {
				return output.JSON(rep)
			}

			output.Bold("✅ Numerical audit %s", rep.RunID)
			output.Println()
			for _, res := range rep.Results {
				status := output.Green("PASS")
				if !res.Passed {
					status = output.Red("FAIL")
				}
				output.Printf("  %s  %-18s %5d cases  max err %.2e  %.1fms\n",
					status, res.Name, res.Cases, res.MaxError, res.ElapsedMs)
				for _, detail := range res.Details {
					output.Dim("        %s", detail)
				}
			}
			output.Println()
			output.Printf("  %d cases, %d failures, max error %.2e, mean %.2e in %.1fms\n",
				rep.TotalCases, rep.TotalFailures, rep.MaxError, rep.MeanError, rep.ElapsedMs)

			if !rep.Passed {
				return fmt.Errorf("audit failed: %d of %d cases violated invariants", rep.TotalFailures, rep.TotalCases)
			}
			return nil
		},
	}

	cmd.Flags().Bool("list", false, "list the registered checks without running them")
	cmd.Flags().Bool("report", false, "write JSON and markdown report files")
	return cmd
}
