// Package models provides domain models for the performance tracker.
package models

import "time"

// Sentiment classifies a day's outcome.
type Sentiment string

const (
	SentimentUnset    Sentiment = ""
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
	SentimentPositive Sentiment = "positive"
)

// ParseSentiment returns the sentiment for a raw cell value.
// Unknown values map to SentimentUnset.
func ParseSentiment(s string) Sentiment {
	switch Sentiment(s) {
	case SentimentNegative, SentimentNeutral, SentimentPositive:
		return Sentiment(s)
	default:
		return SentimentUnset
	}
}

// DeriveSentiment derives a sentiment from the sign of a daily result.
func DeriveSentiment(value float64) Sentiment {
	switch {
	case value > 0:
		return SentimentPositive
	case value < 0:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// ToggleSentiment applies radio-with-off semantics: selecting the active
// sentiment again clears it.
func ToggleSentiment(current, selected Sentiment) Sentiment {
	if current == selected {
		return SentimentUnset
	}
	return selected
}

// Highlight is a manually toggled row flag. It has no automatic derivation.
type Highlight string

const (
	HighlightUnset  Highlight = ""
	HighlightRed    Highlight = "red"
	HighlightOrange Highlight = "orange"
	HighlightGreen  Highlight = "green"
)

// ParseHighlight returns the highlight for a raw cell value.
// Unknown values map to HighlightUnset.
func ParseHighlight(s string) Highlight {
	switch Highlight(s) {
	case HighlightRed, HighlightOrange, HighlightGreen:
		return Highlight(s)
	default:
		return HighlightUnset
	}
}

// ToggleHighlight applies radio-with-off semantics: selecting the active
// highlight again clears it.
func ToggleHighlight(current, selected Highlight) Highlight {
	if current == selected {
		return HighlightUnset
	}
	return selected
}

// MaxRating is the upper bound of the subjective day score.
const MaxRating = 10

// ClampRating clamps a rating into [0, MaxRating]. 0 means unrated.
func ClampRating(r int) int {
	if r < 0 {
		return 0
	}
	if r > MaxRating {
		return MaxRating
	}
	return r
}

// DayEntry is one row of the monthly cycle, one per business day.
type DayEntry struct {
	ID         int       `json:"id"`
	DayLabel   string    `json:"dayLabel"`
	Date       time.Time `json:"date"`
	DailyValue float64   `json:"dailyValue"`
	MaxValue   float64   `json:"maxValue"`
	Sentiment  Sentiment `json:"sentiment"`
	Rating     int       `json:"rating"`
	Note       string    `json:"note"`
	Highlight  Highlight `json:"highlight"`
}

// HasData reports whether the entry carries any operator-entered data.
// Freshly initialized rows report false.
func (e DayEntry) HasData() bool {
	return e.DailyValue != 0 ||
		e.MaxValue != 0 ||
		e.Sentiment != SentimentUnset ||
		e.Rating != 0 ||
		e.Note != "" ||
		e.Highlight != HighlightUnset
}
