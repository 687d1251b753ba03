// Package opendata retrieves compressed forecast bulletins from the
// provider's open-data endpoint.
package opendata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

const (
	fetchAttempts = 3
	fetchBackoff  = 500 * time.Millisecond
)

// ErrFetch wraps any transport-level retrieval failure, including
// non-success status codes.
var ErrFetch = errors.New("bulletin fetch failed")

// Client downloads station bulletins over HTTP with bounded retries and a
// circuit breaker. The URL template expands "{station}" to the station ID.
type Client struct {
	urlTemplate string
	httpClient  *http.Client
	breaker     *gobreaker.CircuitBreaker
	logger      *slog.Logger
}

// NewClient creates a bulletin client with the given request timeout.
func NewClient(urlTemplate string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		urlTemplate: urlTemplate,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "bulletin-fetch",
			Timeout: 30 * time.Second,
		}),
		logger: logger,
	}
}

// BulletinURL returns the fully expanded download URL for a station.
func (c *Client) BulletinURL(station string) string {
	return strings.ReplaceAll(c.urlTemplate, "{station}", station)
}

// FetchBulletin retrieves the raw compressed bulletin for a station. It
// makes up to three attempts with a fixed short backoff; the circuit breaker
// short-circuits further attempts while the endpoint is known bad.
func (c *Client) FetchBulletin(ctx context.Context, station string) ([]byte, error) {
	url := c.BulletinURL(station)

	var lastErr error
	for attempt := 1; attempt <= fetchAttempts; attempt++ {
		data, err := c.fetchOnce(ctx, url)
		if err == nil {
			return data, nil
		}
		lastErr = err

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			break
		}
		if ctx.Err() != nil {
			break
		}

		c.logger.Warn("bulletin fetch attempt failed",
			"station", station, "attempt", attempt, "error", err)

		if attempt < fetchAttempts && !sleepWithContext(ctx, fetchBackoff) {
			break
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrFetch, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response body: %w", err)
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

// sleepWithContext waits for d or until the context is cancelled, reporting
// whether the full duration elapsed.
func sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
