package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"fig-tracker/internal/config"
)

type stubCapital struct {
	value float64
	err   error
}

func (s stubCapital) FetchCapital(ctx context.Context) (float64, error) {
	return s.value, s.err
}

func newCapitalApp(feed *stubCapital) *App {
	app := &App{
		Config: &config.Config{Capital: config.CapitalConfig{Initial: 1000}},
		Logger: zerolog.Nop(),
	}
	if feed != nil {
		app.Capital = *feed
	}
	return app
}

func TestInitialCapitalFromFeed(t *testing.T) {
	app := newCapitalApp(&stubCapital{value: 2500})

	if got := app.initialCapital(context.Background()); got != 2500 {
		t.Errorf("initialCapital = %v, want 2500", got)
	}
}

func TestInitialCapitalZeroCellIsAuthoritative(t *testing.T) {
	app := newCapitalApp(&stubCapital{value: 0})

	if got := app.initialCapital(context.Background()); got != 0 {
		t.Errorf("a fetched zero must win over the configured default, got %v", got)
	}
}

func TestInitialCapitalFetchFailureFallsBack(t *testing.T) {
	app := newCapitalApp(&stubCapital{err: errors.New("sheet offline")})

	if got := app.initialCapital(context.Background()); got != 1000 {
		t.Errorf("fetch failure should fall back to the config default, got %v", got)
	}
}

func TestInitialCapitalWithoutFeed(t *testing.T) {
	app := newCapitalApp(nil)

	if got := app.initialCapital(context.Background()); got != 1000 {
		t.Errorf("no feed should use the config default, got %v", got)
	}
}
