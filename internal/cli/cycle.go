package cli

import (
	"errors"

	"github.com/spf13/cobra"

	apperrors "fig-tracker/internal/errors"
)

// addCycleCommands adds cycle lifecycle commands.
func addCycleCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "cycle",
		Short: "Manage the trading cycle",
		Long:  "Generate and reset the trading-day grid for the configured cycle.",
	}

	cmd.AddCommand(newCycleInitCmd(app))
	cmd.AddCommand(newCycleResetCmd(app))
	rootCmd.AddCommand(cmd)
}

func newCycleInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a fresh trading-day grid",
		Long: `Generate the trading-day grid for the configured cycle, replacing any
saved entries. Weekends and exchange holidays are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Session.RequireOperator(); err != nil {
				output.Error("Sign in first: figtrack login <user> <password>")
				return err
			}

			if err := app.Journal.Initialize(cmd.Context()); err != nil {
				if errors.Is(err, apperrors.ErrInsufficientDays) {
					output.Error("Not enough trading days in the configured window: %v", err)
				}
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]int{"days": app.Journal.Len()})
			}
			output.Success("✓ Cycle initialized with %d trading days", app.Journal.Len())
			return nil
		},
	}
}

func newCycleResetCmd(app *App) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe all entries and regenerate the grid",
		Long: `Wipe every recorded entry and regenerate the trading-day grid. The
reset password from the configuration is required; with no password
configured the reset is disabled.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Session.RequireOperator(); err != nil {
				output.Error("Sign in first: figtrack login <user> <password>")
				return err
			}

			if err := app.Journal.Reset(cmd.Context(), password); err != nil {
				if errors.Is(err, apperrors.ErrResetDenied) {
					output.Error("Reset denied: wrong or missing password")
				}
				return err
			}

			app.Logger.Info().Msg("Cycle reset")
			if output.IsJSON() {
				return output.JSON(map[string]int{"days": app.Journal.Len()})
			}
			output.Success("✓ Cycle reset, %d fresh trading days", app.Journal.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "reset password")
	return cmd
}
