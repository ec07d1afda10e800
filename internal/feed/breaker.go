package feed

import (
	"sync"
	"time"

	apperrors "fig-tracker/internal/errors"
)

// breakerState tracks whether a feed URL is being fetched normally or has
// been cut off after repeated failures.
type breakerState string

const (
	breakerClosed   breakerState = "closed"
	breakerOpen     breakerState = "open"
	breakerHalfOpen breakerState = "half-open"
)

const (
	breakerFailureThreshold = 3
	breakerCooldown         = 30 * time.Second
)

// breaker cuts off a feed source after repeated failures so a dead sheet
// does not delay every command by the full fetch timeout. After a cooldown
// one probe request is let through.
type breaker struct {
	mu          sync.Mutex
	state       breakerState
	failures    int
	lastFailure time.Time
}

// allow reports whether a fetch may proceed.
func (b *breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case breakerOpen:
		if time.Since(b.lastFailure) >= breakerCooldown {
			b.state = breakerHalfOpen
			return true
		}
		return false
	default:
		return true
	}
}

// record updates the breaker after a fetch.
func (b *breaker) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		b.state = breakerClosed
		b.failures = 0
		return
	}

	b.failures++
	b.lastFailure = time.Now()
	if b.state == breakerHalfOpen || b.failures >= breakerFailureThreshold {
		b.state = breakerOpen
	}
}

// guarded wraps a fetch with the breaker.
func (b *breaker) guarded(source string, fetch func() ([]byte, error)) ([]byte, error) {
	if !b.allow() {
		return nil, apperrors.NewFeedError(source, "source suspended after repeated failures", apperrors.ErrFeedUnavailable)
	}
	body, err := fetch()
	b.record(err)
	return body, err
}
