package httpx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swellwindow/swellwindow/internal/httpx"
)

func newGetRequest(t *testing.T, url string) *http.Request {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, http.NoBody)
	require.NoError(t, err)
	return req
}

func TestClient_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := httpx.NewClient(httpx.ClientConfig{Name: "test"})

	resp, err := client.Do(newGetRequest(t, server.URL))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := httpx.NewClient(httpx.ClientConfig{
		Name:             "test-retry",
		MaxRetries:       5,
		RetryInterval:    10 * time.Millisecond,
		RetryMaxInterval: 20 * time.Millisecond,
	})

	resp, err := client.Do(newGetRequest(t, server.URL))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestClient_ClientErrorsAreNotRetried(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := httpx.NewClient(httpx.ClientConfig{
		Name:          "test-4xx",
		MaxRetries:    5,
		RetryInterval: 10 * time.Millisecond,
	})

	resp, err := client.Do(newGetRequest(t, server.URL))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, int32(1), attempts.Load(), "4xx must pass through without retry")
}

func TestClient_BreakerTrips(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := httpx.NewClient(httpx.ClientConfig{
		Name:             "test-trip",
		MaxRetries:       1,
		RetryInterval:    5 * time.Millisecond,
		RetryMaxInterval: 10 * time.Millisecond,
		BreakerTimeout:   time.Minute,
	})

	// Enough failing requests to trip the breaker.
	for i := 0; i < 5; i++ {
		resp, _ := client.Do(newGetRequest(t, server.URL))
		if resp != nil {
			resp.Body.Close()
		}
	}

	assert.Equal(t, gobreaker.StateOpen, client.BreakerState())

	_, err := client.Do(newGetRequest(t, server.URL))
	assert.ErrorIs(t, err, httpx.ErrCircuitOpen)
}
