// Package journal owns the ordered sequence of day entries for the active
// operating cycle.
package journal

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"fig-tracker/internal/calendar"
	apperrors "fig-tracker/internal/errors"
	"fig-tracker/internal/models"
)

// Field names a DayEntry field updatable through Update.
type Field string

const (
	FieldValue  Field = "dailyValue"
	FieldMax    Field = "maxValue"
	FieldNote   Field = "note"
	FieldRating Field = "rating"
)

// Backend persists entry snapshots. Implementations may be read-only remote
// feeds, in which case writes are skipped entirely by passing a nil backend.
type Backend interface {
	SaveEntries(ctx context.Context, entries []models.DayEntry) error
	GetEntries(ctx context.Context) ([]models.DayEntry, error)
	ClearEntries(ctx context.Context) error
}

// Config holds the cycle parameters the store regenerates entries from.
type Config struct {
	Policy calendar.Policy
	Year   int
	Month  time.Month
	// Start and Count apply under PolicyFixedCount.
	Start time.Time
	Count int
	// ResetPassword gates Reset.
	ResetPassword string
}

// Store holds the current entry snapshot and writes every successful
// mutation through to the backend. Mutations are copy-on-write: the
// previous snapshot is never modified in place, so callers holding an old
// slice can cheaply detect change.
type Store struct {
	gen     *calendar.Generator
	backend Backend
	cfg     Config
	logger  zerolog.Logger

	entries []models.DayEntry
}

// NewStore creates an empty store. Call Initialize, Restore or Replace to
// populate it.
func NewStore(gen *calendar.Generator, backend Backend, cfg Config, logger zerolog.Logger) *Store {
	return &Store{
		gen:     gen,
		backend: backend,
		cfg:     cfg,
		logger:  logger.With().Str("component", "journal").Logger(),
	}
}

// Entries returns the current snapshot. Callers must not modify it.
func (s *Store) Entries() []models.DayEntry {
	return s.entries
}

// Len returns the number of entries in the active cycle.
func (s *Store) Len() int {
	return len(s.entries)
}

// Initialize populates the store with zeroed entries, one per business day
// of the configured cycle, and persists the fresh snapshot.
func (s *Store) Initialize(ctx context.Context) error {
	days, err := s.cycleDays()
	if err != nil {
		return err
	}

	entries := make([]models.DayEntry, len(days))
	for i, d := range days {
		entries[i] = models.DayEntry{
			ID:       i + 1,
			DayLabel: calendar.DayLabel(d),
			Date:     d,
		}
	}

	s.entries = entries
	s.persist(ctx)
	s.logger.Info().Int("days", len(entries)).Msg("Cycle initialized")
	return nil
}

func (s *Store) cycleDays() ([]time.Time, error) {
	if s.cfg.Policy == calendar.PolicyFixedCount {
		return s.gen.CountDays(s.cfg.Start, s.cfg.Count)
	}
	return s.gen.MonthDays(s.cfg.Year, s.cfg.Month), nil
}

// Restore loads the persisted snapshot from the backend, if any.
// It reports whether a snapshot was found.
func (s *Store) Restore(ctx context.Context) (bool, error) {
	if s.backend == nil {
		return false, nil
	}
	entries, err := s.backend.GetEntries(ctx)
	if err != nil {
		return false, err
	}
	if len(entries) == 0 {
		return false, nil
	}
	s.entries = entries
	return true, nil
}

// Replace swaps the in-memory sequence for records loaded from an external
// source. Records arrive already coerced field-by-field; entries without a
// usable numeric id (marked non-positive) fall back to their positional
// index. The replacement snapshot is persisted.
func (s *Store) Replace(ctx context.Context, entries []models.DayEntry) {
	replaced := make([]models.DayEntry, len(entries))
	for i, e := range entries {
		if e.ID <= 0 {
			e.ID = i + 1
		}
		e.Rating = models.ClampRating(e.Rating)
		replaced[i] = e
	}
	s.entries = replaced
	s.persist(ctx)
	s.logger.Info().Int("entries", len(replaced)).Msg("Entries replaced from source")
}

// Update applies a new value to the named field of the entry with the given
// id. Unknown ids are a silent no-op, per the dashboard's behavior. Editing
// the financial result re-derives the sentiment from its sign as a side
// effect. The updated snapshot is returned and persisted.
func (s *Store) Update(ctx context.Context, id int, field Field, value interface{}) []models.DayEntry {
	return s.apply(ctx, id, func(e *models.DayEntry) {
		switch field {
		case FieldValue:
			v, _ := value.(float64)
			e.DailyValue = v
			e.Sentiment = models.DeriveSentiment(v)
		case FieldMax:
			v, _ := value.(float64)
			if v < 0 {
				v = 0
			}
			e.MaxValue = v
		case FieldNote:
			v, _ := value.(string)
			e.Note = v
		case FieldRating:
			v, _ := value.(int)
			e.Rating = models.ClampRating(v)
		}
	})
}

// ToggleSentiment selects a sentiment on the entry; selecting the active
// one clears it back to unset.
func (s *Store) ToggleSentiment(ctx context.Context, id int, selected models.Sentiment) []models.DayEntry {
	return s.apply(ctx, id, func(e *models.DayEntry) {
		e.Sentiment = models.ToggleSentiment(e.Sentiment, selected)
	})
}

// ToggleHighlight selects a highlight on the entry; selecting the active
// one clears it back to unset.
func (s *Store) ToggleHighlight(ctx context.Context, id int, selected models.Highlight) []models.DayEntry {
	return s.apply(ctx, id, func(e *models.DayEntry) {
		e.Highlight = models.ToggleHighlight(e.Highlight, selected)
	})
}

// apply copies the snapshot, mutates the matching entry in the copy, and
// persists. The previous snapshot is left untouched.
func (s *Store) apply(ctx context.Context, id int, mutate func(*models.DayEntry)) []models.DayEntry {
	found := false
	next := make([]models.DayEntry, len(s.entries))
	for i, e := range s.entries {
		if e.ID == id {
			mutate(&e)
			found = true
		}
		next[i] = e
	}

	if !found {
		s.logger.Debug().Int("id", id).Msg("Update for unknown entry ignored")
		return s.entries
	}

	s.entries = next
	s.persist(ctx)
	return next
}

// Reset discards all entries and regenerates a fresh cycle. It requires the
// configured reset password; on mismatch nothing changes and ErrResetDenied
// is returned.
func (s *Store) Reset(ctx context.Context, password string) error {
	if s.cfg.ResetPassword == "" || password != s.cfg.ResetPassword {
		return apperrors.ErrResetDenied
	}

	if s.backend != nil {
		if err := s.backend.ClearEntries(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to clear persisted entries")
		}
	}

	return s.Initialize(ctx)
}

// persist writes the current snapshot through to the backend. Failures are
// logged and swallowed: persistence is fire-and-forget, the in-memory
// snapshot stays authoritative for the session.
func (s *Store) persist(ctx context.Context) {
	if s.backend == nil {
		return
	}
	if err := s.backend.SaveEntries(ctx, s.entries); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to persist entries")
	}
}
