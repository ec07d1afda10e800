package cli

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"fig-tracker/internal/tape"
)

// addTapeCommands adds the simulated trade tape.
func addTapeCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newTapeCmd(app))
}

func newTapeCmd(app *App) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "tape",
		Short: "Stream the simulated trade tape",
		Long: `Stream simulated trade prints to the terminal. Runs until interrupted,
or for a fixed number of prints with --count. The prints are random and
carry no market data.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			output.Printf("Mercado: %s\n", output.MarketStatus(tape.MarketOpen(time.Now())))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			printed := 0
			var cancel context.CancelFunc
			if count > 0 {
				ctx, cancel = context.WithCancel(ctx)
				defer cancel()
			}

			app.Tape.Run(ctx, func(t tape.Trade) {
				if output.IsJSON() {
					output.JSON(t)
				} else {
					output.Printf("%s  %s\n", output.DimText(t.Time.Format("15:04:05")), output.FormatPnL(t.Value))
				}
				printed++
				if count > 0 && printed >= count {
					cancel()
				}
			})
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, "stop after this many prints (0 = run until interrupted)")
	return cmd
}
