package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/swellwindow/swellwindow/internal/api/middleware"
)

func TestRequestID_Generated(t *testing.T) {
	var ctxID string
	handler := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = middleware.GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/spots", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	headerID := rec.Header().Get("X-Request-Id")
	assert.True(t, strings.HasPrefix(headerID, "req_"))
	assert.Equal(t, headerID, ctxID)
}

func TestRequestID_Propagated(t *testing.T) {
	handler := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/spots", nil)
	req.Header.Set("X-Request-Id", "req_from_client")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "req_from_client", rec.Header().Get("X-Request-Id"))
}

func TestGetRequestID_Empty(t *testing.T) {
	assert.Equal(t, "", middleware.GetRequestID(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}
