package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swellwindow/swellwindow/internal/auth"
)

const (
	testKey      = "test-secret-key-for-testing-only"
	testIssuer   = "https://accounts.swellwindow.app"
	testAudience = "swellwindow-api"
)

func signToken(t *testing.T, key string, claims auth.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return token
}

func validClaims(userID string) auth.Claims {
	now := time.Now()
	return auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   userID,
			Audience:  jwt.ClaimStrings{testAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		UserID: userID,
	}
}

func TestVerifier_Verify(t *testing.T) {
	v := auth.NewVerifier(auth.VerifierConfig{
		SigningKey: testKey,
		Issuer:     testIssuer,
		Audience:   testAudience,
	})

	token := signToken(t, testKey, validClaims("usr_test123"))

	userID, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "usr_test123", userID)
}

func TestVerifier_Malformed(t *testing.T) {
	v := auth.NewVerifier(auth.VerifierConfig{
		SigningKey: testKey,
		Issuer:     testIssuer,
		Audience:   testAudience,
	})

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"malformed token", "not.a.valid.jwt"},
		{"invalid base64", "xxx.yyy.zzz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(tt.token)
			assert.ErrorIs(t, err, auth.ErrTokenInvalid)
		})
	}
}

func TestVerifier_Expired(t *testing.T) {
	v := auth.NewVerifier(auth.VerifierConfig{
		SigningKey: testKey,
		Issuer:     testIssuer,
		Audience:   testAudience,
	})

	claims := validClaims("usr_test123")
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	token := signToken(t, testKey, claims)

	_, err := v.Verify(token)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestVerifier_WrongSigningKey(t *testing.T) {
	v := auth.NewVerifier(auth.VerifierConfig{
		SigningKey: testKey,
		Issuer:     testIssuer,
		Audience:   testAudience,
	})

	token := signToken(t, "some-other-key", validClaims("usr_test123"))

	_, err := v.Verify(token)
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestVerifier_WrongAudience(t *testing.T) {
	v := auth.NewVerifier(auth.VerifierConfig{
		SigningKey: testKey,
		Issuer:     testIssuer,
		Audience:   testAudience,
	})

	claims := validClaims("usr_test123")
	claims.Audience = jwt.ClaimStrings{"other-api"}
	token := signToken(t, testKey, claims)

	_, err := v.Verify(token)
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestVerifier_MissingUserID(t *testing.T) {
	v := auth.NewVerifier(auth.VerifierConfig{
		SigningKey: testKey,
		Issuer:     testIssuer,
		Audience:   testAudience,
	})

	token := signToken(t, testKey, validClaims(""))

	_, err := v.Verify(token)
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}
