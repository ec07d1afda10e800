package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "fig-tracker/internal/errors"
	"fig-tracker/internal/models"
)

const recordsCSV = `id,dayLabel,dailyValue,maxValue,sentiment,rating,note,highlight
1,01 Seg,"R$ 150,00","R$ 300,00",positive,8,breakout,green
2,02 Ter,"-R$ 40,00",,negative,3,,red
3,03 Qua,abc,-10,,,plain note,
`

func TestCSVSourceFetchEntries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(recordsCSV))
	}))
	defer server.Close()

	source := NewCSVSource(NewClient(0), server.URL)
	entries, err := source.FetchEntries(context.Background())
	if err != nil {
		t.Fatalf("FetchEntries: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(entries))
	}

	first := entries[0]
	if first.ID != 1 || first.DailyValue != 150 || first.MaxValue != 300 {
		t.Errorf("first row mismatch: %+v", first)
	}
	if first.Sentiment != models.SentimentPositive || first.Highlight != models.HighlightGreen {
		t.Errorf("first row markers mismatch: %+v", first)
	}

	second := entries[1]
	if second.DailyValue != -40 {
		t.Errorf("second row value = %v, want -40", second.DailyValue)
	}

	// Malformed cells default to zero/unset, negative highs clamp to 0.
	third := entries[2]
	if third.DailyValue != 0 || third.MaxValue != 0 || third.Rating != 0 {
		t.Errorf("malformed cells should default to zero: %+v", third)
	}
	if third.Note != "plain note" {
		t.Errorf("note column lost: %+v", third)
	}
}

func TestJSONSourceFetchEntries(t *testing.T) {
	payload := `[
		{"id": 1, "dayLabel": "01 Seg", "dailyValue": "R$ 150,00", "rating": 8},
		{"dayLabel": "02 Ter", "dailyValue": -40, "sentiment": "negative"}
	]`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer server.Close()

	source := NewJSONSource(NewClient(0), server.URL)
	entries, err := source.FetchEntries(context.Background())
	if err != nil {
		t.Fatalf("FetchEntries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(entries))
	}
	if entries[0].DailyValue != 150 || entries[0].Rating != 8 {
		t.Errorf("string cells should coerce: %+v", entries[0])
	}
	if entries[1].ID != 0 {
		t.Errorf("missing id should stay 0 for positional fallback, got %d", entries[1].ID)
	}
	if entries[1].DailyValue != -40 || entries[1].Sentiment != models.SentimentNegative {
		t.Errorf("numeric cells should pass through: %+v", entries[1])
	}
}

func TestCredentialCSVMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("trader01,secret1\n\"TRADER02\",\"Secret2\"\nshort\n"))
	}))
	defer server.Close()

	source := NewCredentialCSV(NewClient(0), server.URL)
	ctx := context.Background()

	ok, err := source.Match(ctx, "Trader01", "SECRET1")
	if err != nil || !ok {
		t.Errorf("case-insensitive match failed: ok=%v err=%v", ok, err)
	}
	ok, err = source.Match(ctx, "trader02", "secret2")
	if err != nil || !ok {
		t.Errorf("quoted row match failed: ok=%v err=%v", ok, err)
	}
	ok, err = source.Match(ctx, "trader01", "wrong")
	if err != nil || ok {
		t.Errorf("wrong password must not match: ok=%v err=%v", ok, err)
	}
}

func TestCapitalCSVFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("caixa\n\"R$ 5.000,00\"\n"))
	}))
	defer server.Close()

	source := NewCapitalCSV(NewClient(0), server.URL)
	v, err := source.FetchCapital(context.Background())
	if err != nil {
		t.Fatalf("FetchCapital: %v", err)
	}
	if v != 5000 {
		t.Errorf("capital = %v, want 5000", v)
	}
}

func TestGetErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	source := NewCSVSource(NewClient(0), server.URL)
	_, err := source.FetchEntries(context.Background())
	if !errors.Is(err, apperrors.ErrFeedUnavailable) {
		t.Fatalf("non-2xx should wrap ErrFeedUnavailable, got %v", err)
	}

	var feedErr *apperrors.FeedError
	if !errors.As(err, &feedErr) {
		t.Fatalf("expected a FeedError, got %T", err)
	}
}

func TestBreakerSuspendsFailingSource(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(time.Second)
	source := NewCSVSource(client, server.URL)
	ctx := context.Background()

	for i := 0; i < breakerFailureThreshold; i++ {
		if _, err := source.FetchEntries(ctx); err == nil {
			t.Fatal("expected fetch failure")
		}
	}
	hitsBefore := hits

	// The breaker is open now: no request reaches the server.
	if _, err := source.FetchEntries(ctx); err == nil {
		t.Fatal("open breaker should fail fast")
	}
	if hits != hitsBefore {
		t.Errorf("open breaker still hit the server (%d -> %d)", hitsBefore, hits)
	}
}

func TestBreakerRecovers(t *testing.T) {
	b := &breaker{state: breakerClosed}
	boom := errors.New("boom")

	for i := 0; i < breakerFailureThreshold; i++ {
		b.record(boom)
	}
	if b.allow() {
		t.Fatal("breaker should be open after repeated failures")
	}

	// After the cooldown one probe goes through; success closes it.
	b.lastFailure = time.Now().Add(-2 * breakerCooldown)
	if !b.allow() {
		t.Fatal("cooldown elapsed, probe should be allowed")
	}
	b.record(nil)
	if !b.allow() {
		t.Fatal("successful probe should close the breaker")
	}
}
