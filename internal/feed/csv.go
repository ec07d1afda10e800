package feed

import (
	"context"

	"github.com/gocarina/gocsv"

	apperrors "fig-tracker/internal/errors"
	"fig-tracker/internal/models"
)

// entryRow mirrors one row of the record sheet's CSV export. Every column
// is read as text; coercion to typed fields happens afterwards so a single
// malformed cell never sinks the whole load.
type entryRow struct {
	ID         string `csv:"id"`
	DayLabel   string `csv:"dayLabel"`
	DailyValue string `csv:"dailyValue"`
	MaxValue   string `csv:"maxValue"`
	Sentiment  string `csv:"sentiment"`
	Rating     string `csv:"rating"`
	Note       string `csv:"note"`
	Highlight  string `csv:"highlight"`
}

// CSVSource reads day entries from a sheet published as CSV.
type CSVSource struct {
	client *Client
	url    string
}

// NewCSVSource creates a CSV feed for the given export URL.
func NewCSVSource(client *Client, url string) *CSVSource {
	return &CSVSource{client: client, url: url}
}

// FetchEntries downloads and parses the record sheet. The header row is
// consumed by the CSV mapping; quoted cells are handled by the reader.
func (s *CSVSource) FetchEntries(ctx context.Context) ([]models.DayEntry, error) {
	body, err := s.client.get(ctx, "records-csv", s.url)
	if err != nil {
		return nil, err
	}

	var rows []*entryRow
	if err := gocsv.UnmarshalBytes(body, &rows); err != nil {
		return nil, apperrors.NewFeedError("records-csv", "parsing csv", err)
	}

	entries := make([]models.DayEntry, 0, len(rows))
	for _, r := range rows {
		value := coerceFloat(r.DailyValue)
		maxValue := coerceFloat(r.MaxValue)
		if maxValue < 0 {
			maxValue = 0
		}
		entries = append(entries, models.DayEntry{
			ID:         coerceID(r.ID),
			DayLabel:   r.DayLabel,
			DailyValue: value,
			MaxValue:   maxValue,
			Sentiment:  models.ParseSentiment(r.Sentiment),
			Rating:     models.ClampRating(coerceInt(r.Rating)),
			Note:       r.Note,
			Highlight:  models.ParseHighlight(r.Highlight),
		})
	}
	return entries, nil
}
