// Package httpx provides the resilient HTTP client used for calls to
// the upstream surf backend: retries with exponential backoff behind a
// circuit breaker.
package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"
)

// Client errors.
var (
	// ErrCircuitOpen is returned while the circuit breaker rejects
	// requests.
	ErrCircuitOpen = errors.New("upstream circuit open")
)

// ClientConfig holds configuration for the resilient client.
type ClientConfig struct {
	// Name identifies the upstream for breaker naming and logging.
	Name string

	// Timeout per HTTP attempt (default: 15 seconds).
	Timeout time.Duration

	// MaxRetries is how many times a transient failure is retried
	// (default: 3).
	MaxRetries uint64

	// RetryInterval is the initial backoff interval (default: 200ms).
	RetryInterval time.Duration

	// RetryMaxInterval caps the backoff interval (default: 3 seconds).
	RetryMaxInterval time.Duration

	// BreakerTimeout is how long the breaker stays open before probing
	// again (default: 30 seconds).
	BreakerTimeout time.Duration
}

// Client wraps http.Client with retry and circuit-breaker behavior.
// Responses with a 5xx status and transport errors count as failures
// and are retried; 4xx responses are returned to the caller untouched.
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*http.Response]
	cfg        ClientConfig
}

// NewClient creates a resilient client for one upstream.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryInterval == 0 {
		cfg.RetryInterval = 200 * time.Millisecond
	}
	if cfg.RetryMaxInterval == 0 {
		cfg.RetryMaxInterval = 3 * time.Second
	}
	if cfg.BreakerTimeout == 0 {
		cfg.BreakerTimeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    newBreaker(cfg),
		cfg:        cfg,
	}
}

// Do executes the request, retrying transient failures with exponential
// backoff. The caller owns the response body.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.do(req.Context(), req)
}

func (c *Client) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.cfg.RetryInterval
	bo.MaxInterval = c.cfg.RetryMaxInterval
	bo.MaxElapsedTime = 0 // retries bounded by MaxRetries, not wall time

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, c.cfg.MaxRetries), ctx)

	var lastResp *http.Response

	attempt := func() error {
		resp, err := c.breaker.Execute(func() (*http.Response, error) { //nolint:bodyclose // caller closes
			r, err := c.httpClient.Do(req.Clone(ctx))
			if err != nil {
				return nil, err
			}
			if r.StatusCode >= 500 {
				return r, &UpstreamError{StatusCode: r.StatusCode}
			}
			return r, nil
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(ErrCircuitOpen)
			}
			if resp != nil {
				lastResp = resp
			}
			return err
		}
		lastResp = resp
		return nil
	}

	if err := backoff.Retry(attempt, policy); err != nil {
		if lastResp != nil {
			// Retries exhausted on a 5xx; hand the final response back.
			return lastResp, nil
		}
		return nil, err
	}
	return lastResp, nil
}

// BreakerState returns the circuit breaker's current state.
func (c *Client) BreakerState() gobreaker.State {
	return c.breaker.State()
}

// UpstreamError represents an HTTP 5xx from the upstream.
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}
