// Package calendar generates the ordered business-day sequence for an
// operating cycle, excluding weekends and B3 exchange holidays.
package calendar

import (
	"fmt"
	"strings"
	"time"

	apperrors "fig-tracker/internal/errors"
)

// Policy selects how a cycle's business days are enumerated.
type Policy string

const (
	// PolicyWholeMonth enumerates every business day inside the calendar
	// month. This is the default.
	PolicyWholeMonth Policy = "month"
	// PolicyFixedCount collects a fixed number of business days from a
	// start date, spilling into following months if needed.
	PolicyFixedCount Policy = "count"
)

// Valid reports whether p is a known policy.
func (p Policy) Valid() bool {
	return p == PolicyWholeMonth || p == PolicyFixedCount
}

// weekday abbreviations, pt-BR, Sunday first.
var weekdayAbbr = [7]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

// Generator answers business-day queries against a holiday set.
type Generator struct {
	holidays map[string]struct{}
}

// New creates a generator over the built-in B3 holiday set plus any extra
// ISO dates (YYYY-MM-DD). Holiday lists for future years must be refreshed
// out of band.
func New(extra ...string) *Generator {
	g := &Generator{holidays: make(map[string]struct{}, len(b3Holidays)+len(extra))}
	for _, d := range b3Holidays {
		g.holidays[d] = struct{}{}
	}
	for _, d := range extra {
		d = strings.TrimSpace(d)
		if d != "" {
			g.holidays[d] = struct{}{}
		}
	}
	return g
}

// IsBusinessDay reports whether t falls on a weekday that is not a holiday.
func (g *Generator) IsBusinessDay(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	_, holiday := g.holidays[t.Format("2006-01-02")]
	return !holiday
}

// MonthDays enumerates every business day inside the given calendar month,
// in order.
func (g *Generator) MonthDays(year int, month time.Month) []time.Time {
	var days []time.Time
	for d := time.Date(year, month, 1, 0, 0, 0, 0, time.Local); d.Month() == month; d = d.AddDate(0, 0, 1) {
		if g.IsBusinessDay(d) {
			days = append(days, d)
		}
	}
	return days
}

// CountDays collects count business days starting at start. Scanning is
// bounded at twice the requested count of calendar days so a pathological
// holiday list cannot loop forever; running out of horizon returns
// ErrInsufficientDays with however many days were found.
func (g *Generator) CountDays(start time.Time, count int) ([]time.Time, error) {
	if count <= 0 {
		return nil, apperrors.NewValidationError("count", count, "must be positive")
	}

	horizon := 2 * count
	days := make([]time.Time, 0, count)
	d := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.Local)
	for scanned := 0; scanned < horizon && len(days) < count; scanned++ {
		if g.IsBusinessDay(d) {
			days = append(days, d)
		}
		d = d.AddDate(0, 0, 1)
	}

	if len(days) < count {
		return days, apperrors.Wrapf(apperrors.ErrInsufficientDays,
			"found %d of %d business days from %s", len(days), count, start.Format("2006-01-02"))
	}
	return days, nil
}

// DayLabel renders the display label for a business day: zero-padded
// day-of-month plus the capitalized weekday abbreviation ("02 Seg").
func DayLabel(t time.Time) string {
	return fmt.Sprintf("%02d %s", t.Day(), weekdayAbbr[int(t.Weekday())])
}
