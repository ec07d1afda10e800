package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fig-tracker/internal/aggregate"
	"fig-tracker/internal/models"
	"fig-tracker/pkg/utils"
)

// addDashboardCommands adds the dashboard view.
func addDashboardCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newDashboardCmd(app))
}

// loadJournal restores the persisted cycle, generating a fresh one when
// nothing was saved yet.
func (a *App) loadJournal(ctx context.Context) error {
	restored, err := a.Journal.Restore(ctx)
	if err != nil {
		return err
	}
	if restored {
		return nil
	}
	return a.Journal.Initialize(ctx)
}

type dashboardPayload struct {
	Entries []models.DayEntry `json:"entries"`
	Totals  aggregate.Totals  `json:"totals"`
}

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the cycle dashboard",
		Long: `Show the trading-day grid with recorded results and the aggregated
performance block: gross profit and loss, fees, net result, balance,
win rate and withdrawal status.`,
		Aliases: []string{"dash"},
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

			if output.IsJSON() {
				return output.JSON(dashboardPayload{Entries: entries, Totals: totals})
			}

			renderGrid(output, entries)
			output.Println()
			renderTotals(output, totals)
			return nil
		},
	}
}

func renderGrid(output *Output, entries []models.DayEntry) {
	table := NewTable(output, "#", "Dia", "Resultado", "Máxima", "Sent", "Disc", "Anotação")
	for _, e := range entries {
		result := output.DimText("-")
		if e.HasData() {
			result = output.FormatPnL(e.DailyValue)
		}
		maxCell := output.DimText("-")
		if e.MaxValue != 0 {
			maxCell = utils.FormatBRL(e.MaxValue)
		}
		rating := ""
		if e.Rating > 0 {
			rating = fmt.Sprintf("%d/%d", e.Rating, models.MaxRating)
		}
		note := e.Note
		if len([]rune(note)) > 32 {
			note = string([]rune(note)[:29]) + "..."
		}
		table.AddRow(
			fmt.Sprintf("%s %d", output.HighlightMark(e.Highlight), e.ID),
			e.DayLabel,
			result,
			maxCell,
			output.Sentiment(e.Sentiment),
			rating,
			note,
		)
	}
	table.Render()
}

func renderTotals(output *Output, t aggregate.Totals) {
	withdrawal := output.Red("✗ locked")
	if t.WithdrawalUnlocked {
		withdrawal = output.Green("✓ unlocked")
	}
	output.Box("PERFORMANCE", []string{
		fmt.Sprintf("Lucro Bruto     %s", output.Green(utils.FormatBRL(t.GrossProfit))),
		fmt.Sprintf("Prejuízo Bruto  %s", output.Red(utils.FormatBRL(-t.GrossLoss))),
		fmt.Sprintf("Taxas (19%%)     %s", utils.FormatBRL(t.Fees)),
		fmt.Sprintf("Resultado       %s", output.FormatPnL(t.NetPnL)),
		fmt.Sprintf("Saldo           %s", output.BoldText(utils.FormatBRL(t.Balance))),
		fmt.Sprintf("Taxa de Acerto  %d%%", t.WinRate),
		fmt.Sprintf("Dias Operados   %d de %d", t.PopulatedDays, t.TotalDays),
		fmt.Sprintf("Saque           %s", withdrawal),
	})
}
