// Package tape renders a simulated trade tape, the scrolling ticker shown
// alongside the dashboard. Prints are random; nothing here touches a real
// market feed.
package tape

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Trade is one simulated print.
type Trade struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// DefaultInterval is the delay between prints.
const DefaultInterval = 1200 * time.Millisecond

// lossProbability skews the tape slightly toward gains.
const lossProbability = 0.45

// Generator emits simulated trades on a fixed interval.
type Generator struct {
	interval time.Duration
	logger   zerolog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a tape generator. A non-positive interval falls
// back to DefaultInterval.
func NewGenerator(interval time.Duration, logger zerolog.Logger) *Generator {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Generator{
		interval: interval,
		logger:   logger.With().Str("component", "tape").Logger(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Next returns one simulated print. Values land in (0.01, 2.00] and flip
// negative with probability lossProbability.
func (g *Generator) Next() Trade {
	g.mu.Lock()
	value := g.rng.Float64()*1.99 + 0.01
	if g.rng.Float64() < lossProbability {
		value = -value
	}
	g.mu.Unlock()

	return Trade{Time: time.Now(), Value: value}
}

// Run streams prints to fn until ctx is cancelled.
func (g *Generator) Run(ctx context.Context, fn func(Trade)) {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	g.logger.Debug().Dur("interval", g.interval).Msg("Tape started")
	for {
		select {
		case <-ctx.Done():
			g.logger.Debug().Msg("Tape stopped")
			return
		case <-ticker.C:
			fn(g.Next())
		}
	}
}

// MarketOpen reports whether t falls inside the session window shown on
// the tape header, 09:00 to 18:00 local on weekdays.
func MarketOpen(t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return t.Hour() >= 9 && t.Hour() < 18
}
