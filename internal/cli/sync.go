package cli

import (
	"time"

	"github.com/spf13/cobra"

	"fig-tracker/internal/logging"
)

// addSyncCommands adds the remote feed sync command.
func addSyncCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newSyncCmd(app))
}

func newSyncCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Pull day entries from the configured feed",
		Long: `Fetch the record rows from the configured remote feed and replace the
local cycle with them. Rows without a usable id are assigned positional
ids; malformed cells default to empty values.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Session.RequireOperator(); err != nil {
				output.Error("Sign in first: figtrack login <user> <password>")
				return err
			}
			if app.Records == nil {
				output.Error("No remote feed configured; set feed.mode to csv or json")
				return nil
			}

			spin := NewSpinner(output, "Sincronizando carteira...")
			spin.Start(cmd.Context())
			start := time.Now()
			entries, err := app.Records.FetchEntries(cmd.Context())
			spin.Stop()
			logging.LogFeedFetch(app.Logger, app.Config.Feed.Mode, len(entries), time.Since(start), err)
			if err != nil {
				output.Error("Feed fetch failed: %v", err)
				return err
			}

			app.Journal.Replace(cmd.Context(), entries)

			if output.IsJSON() {
				return output.JSON(map[string]int{"rows": len(entries)})
			}
			output.Success("✓ Synced %d rows from the %s feed", len(entries), app.Config.Feed.Mode)
			return nil
		},
	}
}
