// Package feed provides read adapters for the remote tabular sources the
// dashboard can be backed by: sheet CSV exports, a JSON record feed, the
// credential sheet and the initial-capital cell. Adapters share one Source
// interface so the backing can be swapped by configuration instead of
// maintaining parallel application variants.
package feed

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	apperrors "fig-tracker/internal/errors"
	"fig-tracker/internal/models"
	"fig-tracker/pkg/utils"
)

// DefaultTimeout bounds every feed fetch so a dead sheet cannot hang a
// command forever.
const DefaultTimeout = 15 * time.Second

// Source fetches the day-entry rows backing the journal.
type Source interface {
	FetchEntries(ctx context.Context) ([]models.DayEntry, error)
}

// CredentialSource verifies submitted credentials against a remote list.
type CredentialSource interface {
	Match(ctx context.Context, login, password string) (bool, error)
}

// CapitalSource fetches the initial-capital scalar.
type CapitalSource interface {
	FetchCapital(ctx context.Context) (float64, error)
}

// Client wraps the HTTP transport shared by all feed adapters. Fetches to
// each source run behind a breaker so a dead sheet is suspended instead of
// stalling every command.
type Client struct {
	httpClient *http.Client

	mu       sync.Mutex
	breakers map[string]*breaker
}

// NewClient creates a feed client with the given fetch timeout.
// A non-positive timeout falls back to DefaultTimeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		breakers:   make(map[string]*breaker),
	}
}

func (c *Client) breakerFor(source string) *breaker {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.breakers[source]
	if !ok {
		b = &breaker{state: breakerClosed}
		c.breakers[source] = b
	}
	return b
}

// get fetches a URL body through the source's breaker.
func (c *Client) get(ctx context.Context, source, url string) ([]byte, error) {
	return c.breakerFor(source).guarded(source, func() ([]byte, error) {
		return c.fetch(ctx, source, url)
	})
}

// fetch performs the HTTP request. Non-2xx responses are feed errors.
func (c *Client) fetch(ctx context.Context, source, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.NewFeedError(source, "building request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewFeedError(source, "fetch failed", apperrors.Wrap(apperrors.ErrFeedUnavailable, err.Error()))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewFeedError(source, "unexpected status "+resp.Status, apperrors.ErrFeedUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewFeedError(source, "reading body", err)
	}
	return body, nil
}

// Cell coercion helpers. Malformed cells never fail a load; they default to
// zero/unset per the dashboard's behavior.

func coerceFloat(s string) float64 {
	return utils.ParseBRL(s)
}

func coerceInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

// coerceID parses a row id, returning 0 when the cell is missing or not
// numeric so the journal falls back to the positional index.
func coerceID(s string) int {
	v := coerceInt(s)
	if v <= 0 {
		return 0
	}
	return v
}
