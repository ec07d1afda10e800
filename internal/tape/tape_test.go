package tape

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestNextRange(t *testing.T) {
	g := NewGenerator(time.Millisecond, zerolog.Nop())

	losses := 0
	for i := 0; i < 1000; i++ {
		trade := g.Next()
		abs := math.Abs(trade.Value)
		if abs < 0.01 || abs > 2.0 {
			t.Fatalf("print %v outside (0.01, 2.00]", trade.Value)
		}
		if trade.Value < 0 {
			losses++
		}
	}

	// Loss probability is 0.45; anything wildly off means the sign flip
	// is broken, not just unlucky.
	if losses < 300 || losses > 600 {
		t.Errorf("got %d losses out of 1000, expected around 450", losses)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	g := NewGenerator(time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	prints := 0
	done := make(chan struct{})
	go func() {
		g.Run(ctx, func(Trade) {
			prints++
			if prints >= 3 {
				cancel()
			}
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
	if prints < 3 {
		t.Errorf("expected at least 3 prints, got %d", prints)
	}
}

func TestMarketOpen(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"weekday session", time.Date(2025, time.August, 5, 10, 30, 0, 0, time.Local), true},
		{"weekday pre-open", time.Date(2025, time.August, 5, 8, 59, 0, 0, time.Local), false},
		{"weekday after close", time.Date(2025, time.August, 5, 18, 0, 0, 0, time.Local), false},
		{"saturday", time.Date(2025, time.August, 2, 12, 0, 0, 0, time.Local), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MarketOpen(tt.t); got != tt.want {
				t.Errorf("MarketOpen(%s) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}
