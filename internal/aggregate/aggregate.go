// Package aggregate derives monthly totals from the journal's entries.
// Everything here is a pure function of the current snapshot; callers
// recompute on every read rather than caching.
package aggregate

import (
	"math"

	"fig-tracker/internal/models"
)

// FeeRate is the fixed retention applied to the profit side only.
const FeeRate = 0.19

// WithdrawalMinDays is the number of populated days required before the
// computed balance is shown instead of the "floating" placeholder.
const WithdrawalMinDays = 15

// Totals holds the derived monthly aggregates.
type Totals struct {
	GrossProfit float64 `json:"gross_profit"`
	GrossLoss   float64 `json:"gross_loss"` // non-positive; display as absolute
	Fees        float64 `json:"fees"`
	NetPnL      float64 `json:"net_pnl"`
	Balance     float64 `json:"balance"`

	WinCount     int `json:"win_count"`
	LossCount    int `json:"loss_count"`
	NeutralCount int `json:"neutral_count"`
	WinRate      int `json:"win_rate"` // percent, rounded

	PopulatedDays int `json:"populated_days"`
	TotalDays     int `json:"total_days"`

	WithdrawalUnlocked bool `json:"withdrawal_unlocked"`
}

// Compute aggregates the entry snapshot against the initial capital.
func Compute(entries []models.DayEntry, initialCapital float64) Totals {
	t := Totals{TotalDays: len(entries)}

	for _, e := range entries {
		if e.DailyValue > 0 {
			t.GrossProfit += e.DailyValue
		} else if e.DailyValue < 0 {
			t.GrossLoss += e.DailyValue
		}

		switch e.Sentiment {
		case models.SentimentPositive:
			t.WinCount++
		case models.SentimentNegative:
			t.LossCount++
		case models.SentimentNeutral:
			t.NeutralCount++
		}

		if e.HasData() {
			t.PopulatedDays++
		}
	}

	t.Fees = t.GrossProfit * FeeRate
	t.NetPnL = t.GrossProfit + t.GrossLoss - t.Fees
	t.Balance = initialCapital + t.NetPnL

	if rated := t.WinCount + t.LossCount + t.NeutralCount; rated > 0 {
		t.WinRate = int(math.Round(float64(t.WinCount) / float64(rated) * 100))
	}

	t.WithdrawalUnlocked = t.PopulatedDays >= WithdrawalMinDays

	return t
}
