package cli

import (
	"github.com/spf13/cobra"

	"fig-tracker/internal/aggregate"
)

// addAnalyzeCommands adds the AI review command.
func addAnalyzeCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newAnalyzeCmd(app))
}

func newAnalyzeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "AI review of the current cycle",
		Long: `Generate a performance review of the current cycle. With an OpenAI key
configured the review comes from the model; otherwise a static summary
based on the aggregates is printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Session.RequireOperator(); err != nil {
				output.Error("Sign in first: figtrack login <user> <password>")
				return err
			}
			if err := app.loadJournal(cmd.Context()); err != nil {
				return err
			}

			entries := app.Journal.Entries()
			totals := aggregate.Compute(entries, app.initialCapital(cmd.Context()))

			spin := NewSpinner(output)
			spin.Start(cmd.Context())
			review, err := app.Advisor.Analyze(cmd.Context(), entries, totals)
			spin.Stop()
			if err != nil {
				// A fallback review is still returned; surface it with a notice.
				output.Warning("AI review unavailable, showing the static summary")
			}

			if output.IsJSON() {
				return output.JSON(review)
			}

			trend := output.Yellow("→ flat")
			switch review.Trend {
			case "up":
				trend = output.Green("↑ up")
			case "down":
				trend = output.Red("↓ down")
			}
			output.Bold("Cycle Review")
			output.Printf("  Trend:   %s\n", trend)
			output.Printf("  Summary: %s\n", review.Summary)
			output.Printf("  Advice:  %s\n", review.Advice)
			return nil
		},
	}
}
