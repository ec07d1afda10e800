package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	apperrors "fig-tracker/internal/errors"
	"fig-tracker/internal/journal"
	"fig-tracker/internal/logging"
	"fig-tracker/internal/models"
	"fig-tracker/pkg/utils"
)

// addEntryCommands adds the day-entry editing commands.
func addEntryCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Edit day entries",
		Long:  "Record results, sentiment, discipline ratings and notes on trading days.",
	}

	cmd.AddCommand(newEntrySetCmd(app))
	cmd.AddCommand(newEntrySentimentCmd(app))
	cmd.AddCommand(newEntryHighlightCmd(app))
	cmd.AddCommand(newEntryShowCmd(app))
	rootCmd.AddCommand(cmd)
}

func parseEntryID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("id", arg, "entry id must be a positive number")
	}
	return id, nil
}

func newEntrySetCmd(app *App) *cobra.Command {
	var (
		value  string
		max    string
		note   string
		rating int
	)

	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Set fields on a day entry",
		Long: `Set the daily result, session high, discipline rating or note on a day.
Currency values accept both plain and Brazilian formats ("1234.56",
"R$ 1.234,56"). Setting the result re-derives the day's sentiment from
its sign; days with no matching id are left untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Session.RequireOperator(); err != nil {
				output.Error("Sign in first: figtrack login <user> <password>")
				return err
			}
			id, err := parseEntryID(args[0])
			if err != nil {
				return err
			}
			if err := app.loadJournal(cmd.Context()); err != nil {
				return err
			}

			ctx := cmd.Context()
			if cmd.Flags().Changed("value") {
				v := utils.ParseBRL(value)
				app.Journal.Update(ctx, id, journal.FieldValue, v)
				logging.LogEntryUpdate(app.Logger, id, string(journal.FieldValue), v)
			}
			if cmd.Flags().Changed("max") {
				v := utils.ParseBRL(max)
				app.Journal.Update(ctx, id, journal.FieldMax, v)
				logging.LogEntryUpdate(app.Logger, id, string(journal.FieldMax), v)
			}
			if cmd.Flags().Changed("rating") {
				app.Journal.Update(ctx, id, journal.FieldRating, rating)
				logging.LogEntryUpdate(app.Logger, id, string(journal.FieldRating), rating)
			}
			if cmd.Flags().Changed("note") {
				app.Journal.Update(ctx, id, journal.FieldNote, note)
				logging.LogEntryUpdate(app.Logger, id, string(journal.FieldNote), note)
			}

			return showEntry(output, app, id)
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "daily result")
	cmd.Flags().StringVar(&max, "max", "", "session high")
	cmd.Flags().StringVar(&note, "note", "", "note for the day")
	cmd.Flags().IntVar(&rating, "rating", 0, fmt.Sprintf("discipline rating (0-%d)", models.MaxRating))
	return cmd
}

func newEntrySentimentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sentiment <id> <negative|neutral|positive>",
		Short: "Toggle a day's sentiment",
		Long: `Select a sentiment on a day. Selecting the sentiment already active
clears it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Session.RequireOperator(); err != nil {
				output.Error("Sign in first: figtrack login <user> <password>")
				return err
			}
			id, err := parseEntryID(args[0])
			if err != nil {
				return err
			}
			selected := models.ParseSentiment(args[1])
			if selected == models.SentimentUnset {
				return apperrors.NewValidationError("sentiment", args[1], "must be negative, neutral or positive")
			}
			if err := app.loadJournal(cmd.Context()); err != nil {
				return err
			}

			app.Journal.ToggleSentiment(cmd.Context(), id, selected)
			return showEntry(output, app, id)
		},
	}
}

func newEntryHighlightCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "highlight <id> <red|orange|green>",
		Short: "Toggle a day's highlight color",
		Long: `Mark a day with a highlight color. Selecting the color already active
clears it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Session.RequireOperator(); err != nil {
				output.Error("Sign in first: figtrack login <user> <password>")
				return err
			}
			id, err := parseEntryID(args[0])
			if err != nil {
				return err
			}
			selected := models.ParseHighlight(args[1])
			if selected == models.HighlightUnset {
				return apperrors.NewValidationError("highlight", args[1], "must be red, orange or green")
			}
			if err := app.loadJournal(cmd.Context()); err != nil {
				return err
			}

			app.Journal.ToggleHighlight(cmd.Context(), id, selected)
			return showEntry(output, app, id)
		},
	}
}

func newEntryShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one day entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Session.RequireOperator(); err != nil {
				output.Error("Sign in first: figtrack login <user> <password>")
				return err
			}
			id, err := parseEntryID(args[0])
			if err != nil {
				return err
			}
			if err := app.loadJournal(cmd.Context()); err != nil {
				return err
			}
			return showEntry(output, app, id)
		},
	}
}

func showEntry(output *Output, app *App, id int) error {
	for _, e := range app.Journal.Entries() {
		if e.ID != id {
			continue
		}
		if output.IsJSON() {
			return output.JSON(e)
		}
		output.Bold("%s %s", e.DayLabel, output.HighlightMark(e.Highlight))
		output.Printf("  Resultado:  %s\n", output.FormatPnL(e.DailyValue))
		output.Printf("  Máxima:     %s\n", utils.FormatBRL(e.MaxValue))
		output.Printf("  Sentimento: %s\n", output.Sentiment(e.Sentiment))
		output.Printf("  Disciplina: %d/%d\n", e.Rating, models.MaxRating)
		if e.Note != "" {
			output.Printf("  Anotação:   %s\n", e.Note)
		}
		return nil
	}
	output.Warning("No entry with id %d in this cycle", id)
	return nil
}
