package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"fig-tracker/internal/calendar"
	apperrors "fig-tracker/internal/errors"
	"fig-tracker/internal/models"
)

// memBackend is an in-memory Backend for tests.
type memBackend struct {
	entries []models.DayEntry
	saves   int
	failing bool
}

func (m *memBackend) SaveEntries(_ context.Context, entries []models.DayEntry) error {
	if m.failing {
		return errors.New("backend down")
	}
	m.entries = append([]models.DayEntry(nil), entries...)
	m.saves++
	return nil
}

func (m *memBackend) GetEntries(_ context.Context) ([]models.DayEntry, error) {
	return append([]models.DayEntry(nil), m.entries...), nil
}

func (m *memBackend) ClearEntries(_ context.Context) error {
	m.entries = nil
	return nil
}

func newTestStore(t *testing.T, backend Backend) *Store {
	t.Helper()
	return NewStore(calendar.New(), backend, Config{
		Policy:        calendar.PolicyWholeMonth,
		Year:          2025,
		Month:         time.August,
		ResetPassword: "figreset",
	}, zerolog.Nop())
}

func TestInitialize(t *testing.T) {
	backend := &memBackend{}
	store := newTestStore(t, backend)

	if err := store.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	entries := store.Entries()
	if len(entries) != 21 {
		t.Fatalf("expected 21 trading days in Aug 2025, got %d", len(entries))
	}
	for i, e := range entries {
		if e.ID != i+1 {
			t.Errorf("entry %d has id %d", i, e.ID)
		}
		if e.DayLabel == "" {
			t.Errorf("entry %d has no label", i)
		}
		if e.HasData() {
			t.Errorf("fresh entry %d should be empty", i)
		}
	}
	if backend.saves != 1 {
		t.Errorf("expected one persist, got %d", backend.saves)
	}
	if entries[0].DayLabel != "01 Sex" {
		t.Errorf("first label = %q, want %q", entries[0].DayLabel, "01 Sex")
	}
}

func TestUpdateDerivesSentiment(t *testing.T) {
	store := newTestStore(t, nil)
	ctx := context.Background()
	if err := store.Initialize(ctx); err != nil {
		t.Fatal(err)
	}

	store.Update(ctx, 1, FieldValue, 120.5)
	if got := store.Entries()[0].Sentiment; got != models.SentimentPositive {
		t.Errorf("gain should derive positive sentiment, got %q", got)
	}

	store.Update(ctx, 1, FieldValue, -3.0)
	if got := store.Entries()[0].Sentiment; got != models.SentimentNegative {
		t.Errorf("loss should derive negative sentiment, got %q", got)
	}

	store.Update(ctx, 1, FieldValue, 0.0)
	if got := store.Entries()[0].Sentiment; got != models.SentimentNeutral {
		t.Errorf("flat day should derive neutral sentiment, got %q", got)
	}
}

func TestUpdateCopyOnWrite(t *testing.T) {
	store := newTestStore(t, nil)
	ctx := context.Background()
	if err := store.Initialize(ctx); err != nil {
		t.Fatal(err)
	}

	before := store.Entries()
	after := store.Update(ctx, 2, FieldNote, "breakout day")

	if before[1].Note != "" {
		t.Error("old snapshot was mutated in place")
	}
	if after[1].Note != "breakout day" {
		t.Error("new snapshot is missing the update")
	}
}

func TestUpdateUnknownID(t *testing.T) {
	store := newTestStore(t, nil)
	ctx := context.Background()
	if err := store.Initialize(ctx); err != nil {
		t.Fatal(err)
	}

	before := store.Entries()
	after := store.Update(ctx, 999, FieldNote, "ghost")

	if len(after) != len(before) {
		t.Fatal("unknown id changed the snapshot length")
	}
	for i := range after {
		if after[i] != before[i] {
			t.Errorf("entry %d changed on unknown-id update", i)
		}
	}
}

func TestUpdateClampsInputs(t *testing.T) {
	store := newTestStore(t, nil)
	ctx := context.Background()
	if err := store.Initialize(ctx); err != nil {
		t.Fatal(err)
	}

	store.Update(ctx, 1, FieldRating, 25)
	if got := store.Entries()[0].Rating; got != models.MaxRating {
		t.Errorf("rating should clamp to %d, got %d", models.MaxRating, got)
	}

	store.Update(ctx, 1, FieldMax, -50.0)
	if got := store.Entries()[0].MaxValue; got != 0 {
		t.Errorf("negative session high should clamp to 0, got %v", got)
	}
}

func TestToggleSentiment(t *testing.T) {
	store := newTestStore(t, nil)
	ctx := context.Background()
	if err := store.Initialize(ctx); err != nil {
		t.Fatal(err)
	}

	store.ToggleSentiment(ctx, 1, models.SentimentNeutral)
	if got := store.Entries()[0].Sentiment; got != models.SentimentNeutral {
		t.Fatalf("sentiment = %q, want neutral", got)
	}
	store.ToggleSentiment(ctx, 1, models.SentimentNeutral)
	if got := store.Entries()[0].Sentiment; got != models.SentimentUnset {
		t.Fatalf("re-selecting should clear, got %q", got)
	}
}

func TestReplaceAssignsPositionalIDs(t *testing.T) {
	store := newTestStore(t, nil)
	ctx := context.Background()

	store.Replace(ctx, []models.DayEntry{
		{ID: 7, DayLabel: "01 Seg", DailyValue: 10},
		{DayLabel: "02 Ter", Rating: 99},
	})

	entries := store.Entries()
	if entries[0].ID != 7 {
		t.Errorf("explicit id should survive, got %d", entries[0].ID)
	}
	if entries[1].ID != 2 {
		t.Errorf("missing id should fall back to position, got %d", entries[1].ID)
	}
	if entries[1].Rating != models.MaxRating {
		t.Errorf("imported rating should clamp, got %d", entries[1].Rating)
	}
}

func TestRestore(t *testing.T) {
	backend := &memBackend{entries: []models.DayEntry{{ID: 1, DayLabel: "01 Sex", DailyValue: 50}}}
	store := newTestStore(t, backend)

	found, err := store.Restore(context.Background())
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if !found {
		t.Fatal("expected a persisted snapshot")
	}
	if store.Len() != 1 || store.Entries()[0].DailyValue != 50 {
		t.Error("restored snapshot does not match the backend")
	}

	empty := newTestStore(t, &memBackend{})
	found, err = empty.Restore(context.Background())
	if err != nil || found {
		t.Errorf("empty backend should report no snapshot, got found=%v err=%v", found, err)
	}
}

func TestResetRequiresPassword(t *testing.T) {
	store := newTestStore(t, nil)
	ctx := context.Background()
	if err := store.Initialize(ctx); err != nil {
		t.Fatal(err)
	}
	store.Update(ctx, 1, FieldValue, 100.0)

	if err := store.Reset(ctx, "wrong"); !errors.Is(err, apperrors.ErrResetDenied) {
		t.Fatalf("expected ErrResetDenied, got %v", err)
	}
	if store.Entries()[0].DailyValue != 100 {
		t.Error("denied reset must not touch entries")
	}

	if err := store.Reset(ctx, "figreset"); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if store.Entries()[0].HasData() {
		t.Error("reset should wipe recorded data")
	}
}

func TestResetDisabledWithoutPassword(t *testing.T) {
	store := NewStore(calendar.New(), nil, Config{
		Policy: calendar.PolicyWholeMonth,
		Year:   2025,
		Month:  time.August,
	}, zerolog.Nop())

	if err := store.Reset(context.Background(), ""); !errors.Is(err, apperrors.ErrResetDenied) {
		t.Fatalf("reset must be disabled with no password configured, got %v", err)
	}
}

func TestPersistFailureKeepsSnapshot(t *testing.T) {
	backend := &memBackend{failing: true}
	store := newTestStore(t, backend)
	ctx := context.Background()

	if err := store.Initialize(ctx); err != nil {
		t.Fatalf("persist failures must not fail Initialize: %v", err)
	}
	store.Update(ctx, 1, FieldValue, 10.0)
	if store.Entries()[0].DailyValue != 10 {
		t.Error("in-memory snapshot must stay authoritative when persistence fails")
	}
}
