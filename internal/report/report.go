// Package report builds the cycle performance report and exports it as a
// spreadsheet.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"fig-tracker/internal/aggregate"
	apperrors "fig-tracker/internal/errors"
	"fig-tracker/internal/models"
	"fig-tracker/pkg/utils"
)

// Line is one labeled row of the report body.
type Line struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Summary is the rendered report.
type Summary struct {
	Title   string            `json:"title"`
	Month   string            `json:"month"`
	Lines   []Line            `json:"lines"`
	Totals  aggregate.Totals  `json:"totals"`
	Entries []models.DayEntry `json:"entries"`
}

var monthAbbr = [13]string{"", "JAN", "FEV", "MAR", "ABR", "MAI", "JUN",
	"JUL", "AGO", "SET", "OUT", "NOV", "DEZ"}

// MonthTitle renders the report heading for a cycle month.
func MonthTitle(year int, month time.Month) string {
	return fmt.Sprintf("RELATÓRIO DE PERFORMANCE - %s %d", monthAbbr[int(month)], year)
}

// Build assembles the report for a cycle.
func Build(entries []models.DayEntry, initialCapital float64, year int, month time.Month) Summary {
	totals := aggregate.Compute(entries, initialCapital)
	return Summary{
		Title: MonthTitle(year, month),
		Month: fmt.Sprintf("%04d-%02d", year, int(month)),
		Lines: []Line{
			{Label: "Caixa Inicial", Value: utils.FormatBRL(initialCapital)},
			{Label: "Lucro Bruto", Value: utils.FormatBRL(totals.GrossProfit)},
			{Label: "Prejuízo Bruto", Value: utils.FormatBRL(-totals.GrossLoss)},
			{Label: "Taxas (19%)", Value: utils.FormatBRL(totals.Fees)},
			{Label: "Saldo Final", Value: utils.FormatBRL(totals.Balance)},
		},
		Totals:  totals,
		Entries: entries,
	}
}

// Text renders the report as terminal lines.
func (s Summary) Text() string {
	var b strings.Builder
	b.WriteString(s.Title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", len([]rune(s.Title))))
	b.WriteString("\n")
	for _, line := range s.Lines {
		fmt.Fprintf(&b, "%-16s %s\n", line.Label, line.Value)
	}
	return b.String()
}

const sheetName = "Performance"

// WriteXLSX exports the report and the per-day breakdown to path.
func WriteXLSX(s Summary, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), sheetName)

	if err := f.SetCellValue(sheetName, "A1", s.Title); err != nil {
		return apperrors.Wrap(err, "writing report title")
	}
	if err := f.MergeCell(sheetName, "A1", "C1"); err != nil {
		return apperrors.Wrap(err, "merging title cells")
	}

	row := 3
	for _, line := range s.Lines {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), line.Label)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), line.Value)
		row++
	}

	row += 2
	headers := []string{"Dia", "Resultado", "Máxima", "Sentimento", "Disciplina", "Anotação"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheetName, cell, h)
	}
	row++
	for _, e := range s.Entries {
		if !e.HasData() {
			continue
		}
		values := []interface{}{
			e.DayLabel,
			utils.FormatBRL(e.DailyValue),
			utils.FormatBRL(e.MaxValue),
			string(e.Sentiment),
			e.Rating,
			e.Note,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheetName, cell, v)
		}
		row++
	}

	if err := f.SetColWidth(sheetName, "A", "A", 18); err != nil {
		return apperrors.Wrap(err, "sizing columns")
	}
	f.SetColWidth(sheetName, "B", "C", 16)
	f.SetColWidth(sheetName, "F", "F", 40)

	if err := f.SaveAs(path); err != nil {
		return apperrors.Wrap(err, "saving report")
	}
	return nil
}
