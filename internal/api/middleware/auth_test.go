package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/swellwindow/swellwindow/internal/api/middleware"
	"github.com/swellwindow/swellwindow/internal/auth"
)

type stubVerifier struct {
	userID string
	err    error
}

func (v *stubVerifier) Verify(_ string) (string, error) {
	return v.userID, v.err
}

func runAuth(t *testing.T, verifier middleware.TokenVerifier, authHeader string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	var gotUserID string
	handler := middleware.Auth(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = middleware.GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/me/presets", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, gotUserID
}

func TestAuth_ValidToken(t *testing.T) {
	rec, userID := runAuth(t, &stubVerifier{userID: "usr_123"}, "Bearer some-token")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "usr_123", userID)
}

func TestAuth_MissingHeader(t *testing.T) {
	rec, _ := runAuth(t, &stubVerifier{userID: "usr_123"}, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestAuth_MalformedHeader(t *testing.T) {
	rec, _ := runAuth(t, &stubVerifier{userID: "usr_123"}, "Basic abc123")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	rec, _ := runAuth(t, &stubVerifier{err: auth.ErrTokenExpired}, "Bearer expired")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "expired")
}

func TestAuth_InvalidToken(t *testing.T) {
	rec, _ := runAuth(t, &stubVerifier{err: auth.ErrTokenInvalid}, "Bearer garbage")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
