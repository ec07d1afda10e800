package feed

import (
	"context"
	"encoding/json"
	"fmt"

	apperrors "fig-tracker/internal/errors"
	"fig-tracker/internal/models"
)

// JSONSource reads day entries from a sheet-to-JSON bridge: an array of
// objects with the same fields as the CSV export. Values arrive as strings
// or numbers depending on the bridge, so each field is coerced.
type JSONSource struct {
	client *Client
	url    string
}

// NewJSONSource creates a JSON feed for the given URL.
func NewJSONSource(client *Client, url string) *JSONSource {
	return &JSONSource{client: client, url: url}
}

// FetchEntries downloads and parses the JSON record feed.
func (s *JSONSource) FetchEntries(ctx context.Context) ([]models.DayEntry, error) {
	body, err := s.client.get(ctx, "records-json", s.url)
	if err != nil {
		return nil, err
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, apperrors.NewFeedError("records-json", "parsing json", err)
	}

	entries := make([]models.DayEntry, 0, len(rows))
	for _, row := range rows {
		value := fieldFloat(row, "dailyValue")
		maxValue := fieldFloat(row, "maxValue")
		if maxValue < 0 {
			maxValue = 0
		}
		entries = append(entries, models.DayEntry{
			ID:         coerceID(fieldString(row, "id")),
			DayLabel:   fieldString(row, "dayLabel"),
			DailyValue: value,
			MaxValue:   maxValue,
			Sentiment:  models.ParseSentiment(fieldString(row, "sentiment")),
			Rating:     models.ClampRating(int(fieldFloat(row, "rating"))),
			Note:       fieldString(row, "note"),
			Highlight:  models.ParseHighlight(fieldString(row, "highlight")),
		})
	}
	return entries, nil
}

// fieldString renders a JSON value as its cell text. Numbers keep their
// shortest representation so numeric ids survive the round trip.
func fieldString(row map[string]interface{}, key string) string {
	v, ok := row[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		return fmt.Sprintf("%t", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func fieldFloat(row map[string]interface{}, key string) float64 {
	v, ok := row[key]
	if !ok || v == nil {
		return 0
	}
	switch t := v.(type) {
	case float64:
		return t
	case string:
		return coerceFloat(t)
	default:
		return 0
	}
}
