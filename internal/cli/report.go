package cli

import (
	"time"

	"github.com/spf13/cobra"

	"fig-tracker/internal/report"
)

// addReportCommands adds the performance report commands.
func addReportCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Performance reports",
		Long:  "Render and export the cycle performance report.",
	}

	cmd.AddCommand(newReportShowCmd(app))
	cmd.AddCommand(newReportExportCmd(app))
	rootCmd.AddCommand(cmd)
}

func (a *App) buildReport(cmd *cobra.Command) (report.Summary, error) {
	ctx := cmd.Context()
	if err := a.loadJournal(ctx); err != nil {
		return report.Summary{}, err
	}
	return report.Build(
		a.Journal.Entries(),
		a.initialCapital(ctx),
		a.Config.Cycle.Year,
		time.Month(a.Config.Cycle.Month),
	), nil
}

func newReportShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the cycle performance report",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Session.RequireOperator(); err != nil {
				output.Error("Sign in first: figtrack login <user> <password>")
				return err
			}

			summary, err := app.buildReport(cmd)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(summary)
			}
			output.Print("%s", summary.Text())
			return nil
		},
	}
}

func newReportExportCmd(app *App) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the report as a spreadsheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Session.RequireOperator(); err != nil {
				output.Error("Sign in first: figtrack login <user> <password>")
				return err
			}

			summary, err := app.buildReport(cmd)
			if err != nil {
				return err
			}
			if err := report.WriteXLSX(summary, path); err != nil {
				output.Error("Export failed: %v", err)
				return err
			}

			app.Logger.Info().Str("path", path).Msg("Report exported")
			if output.IsJSON() {
				return output.JSON(map[string]string{"path": path})
			}
			output.Success("✓ Report written to %s", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "out", "performance.xlsx", "output file path")
	return cmd
}
