package httpx

import (
	"net/http"

	"github.com/sony/gobreaker/v2"
)

// breakerMinRequests is how many requests must be observed before the
// breaker can trip.
const breakerMinRequests = 5

// breakerFailureRatio is the failure rate at which the breaker trips.
const breakerFailureRatio = 0.5

func newBreaker(cfg ClientConfig) *gobreaker.CircuitBreaker[*http.Response] {
	return gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= breakerMinRequests && ratio >= breakerFailureRatio
		},
	})
}
