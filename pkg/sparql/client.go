// Package sparql provides a resilient read-only client for a public SPARQL
// endpoint. The client paces its requests, honors Retry-After on throttling,
// backs off on server errors, and reports retry exhaustion as a distinct
// error so callers can tell a failed fetch from an empty result. A memoized
// label resolver sits on top of it for the very frequent id-to-label lookups.
package sparql

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lyrelab/intertext/pkg/logger"

	"golang.org/x/time/rate"
)

// ErrRetriesExhausted is returned by Select when every attempt against the
// endpoint failed with a retryable status. It wraps no transport error; the
// last HTTP status is included in the error message.
var ErrRetriesExhausted = errors.New("sparql: retries exhausted")

const (
	defaultTimeout    = 120 * time.Second
	defaultMaxRetries = 5

	// Waits applied when the endpoint does not say how long to back off.
	defaultThrottleWait = 5 * time.Second
	maxServerErrorWait  = 10 * time.Second
)

// Client issues SELECT queries over HTTP.
//
// A Client should be created with NewClient and is safe for concurrent use.
type Client struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
	maxRetries int
	limiter    *rate.Limiter

	// Overridable for tests.
	sleep func(time.Duration)
	now   func() time.Time
}

// NewClientParams defines the configuration for creating a Client.
//
// Endpoint is the SPARQL endpoint URL. UserAgent identifies this tool to the
// endpoint operator and is sent with every request. Timeout bounds a single
// HTTP round trip (default 120s). MaxRetries bounds the total number of
// attempts per query (default 5). RequestsPerSecond throttles outgoing
// requests client-side; zero disables pacing.
type NewClientParams struct {
	Endpoint          string
	UserAgent         string
	Timeout           time.Duration
	MaxRetries        int
	RequestsPerSecond float64
}

// NewClient creates a Client configured with the provided parameters.
func NewClient(params NewClientParams) *Client {
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxRetries := params.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if params.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(params.RequestsPerSecond), 1)
	}
	return &Client{
		endpoint:   params.Endpoint,
		userAgent:  params.UserAgent,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
		limiter:    limiter,
		sleep:      time.Sleep,
		now:        time.Now,
	}
}

// Select runs a SELECT query and returns its rows. Throttling (429) and
// server errors (5xx) are retried with the appropriate wait; after
// MaxRetries attempts the last failure surfaces as ErrRetriesExhausted.
// An empty result set is not an error.
func (c *Client) Select(ctx context.Context, query string) (Rows, error) {
	var lastStatus int
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		body, status, err := c.do(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("sparql: request failed: %w", err)
		}

		switch {
		case status == http.StatusOK:
			return parseRows(body), nil
		case status == http.StatusTooManyRequests:
			lastStatus = status
			if attempt == c.maxRetries {
				break
			}
			wait := c.retryAfterWait(body.retryAfter, defaultThrottleWait)
			logger.Warn("[SPARQL] Throttled by endpoint", "wait", wait, "attempt", attempt, "max", c.maxRetries)
			c.sleep(wait)
		case status >= 500 && status < 600:
			lastStatus = status
			if attempt == c.maxRetries {
				break
			}
			wait := c.retryAfterWait(body.retryAfter, serverErrorBackoff(attempt))
			logger.Warn("[SPARQL] Server error", "status", status, "wait", wait, "attempt", attempt, "max", c.maxRetries)
			c.sleep(wait)
		default:
			return nil, fmt.Errorf("sparql: unexpected status %d", status)
		}
	}
	return nil, fmt.Errorf("%w: last status %d after %d attempts", ErrRetriesExhausted, lastStatus, c.maxRetries)
}

type response struct {
	data       []byte
	retryAfter string
}

func (c *Client) do(ctx context.Context, query string) (response, int, error) {
	u := c.endpoint + "?query=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return response{}, 0, err
	}
	req.Header.Set("Accept", "application/sparql-results+json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response{}, 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, 0, err
	}
	return response{
		data:       data,
		retryAfter: resp.Header.Get("Retry-After"),
	}, resp.StatusCode, nil
}

// retryAfterWait resolves the wait before the next attempt: the Retry-After
// header when present and parseable, the given fallback otherwise.
func (c *Client) retryAfterWait(header string, fallback time.Duration) time.Duration {
	if wait, ok := parseRetryAfter(header, c.now()); ok {
		return wait
	}
	return fallback
}

// parseRetryAfter handles both Retry-After forms: a delay in seconds and an
// HTTP date. A date in the past yields a zero wait, never a negative one.
func parseRetryAfter(header string, now time.Time) (time.Duration, bool) {
	if header == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(header); err == nil {
		if secs < 0 {
			return 0, true
		}
		return time.Duration(secs) * time.Second, true
	}
	if at, err := http.ParseTime(header); err == nil {
		wait := at.Sub(now)
		if wait < 0 {
			wait = 0
		}
		return wait, true
	}
	return 0, false
}

// serverErrorBackoff grows per attempt and is capped, so a flapping endpoint
// is probed with increasing patience but never stalls the run for long.
func serverErrorBackoff(attempt int) time.Duration {
	wait := time.Duration(math.Pow(1.5, float64(attempt-1)) * float64(time.Second))
	if wait > maxServerErrorWait {
		wait = maxServerErrorWait
	}
	return wait
}
