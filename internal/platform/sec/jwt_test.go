// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestTokenService_RoundTrip verifies that a generated token verifies back to the same identity.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service, err := NewTokenService("unit-test-secret", time.Hour)
	require.NoError(t, err)

	token, err := service.GenerateAccessToken(42, "link", "link@hyrule.example")
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "link", claims.Username)
	assert.Equal(t, "link@hyrule.example", claims.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := NewTokenService("", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

/*
TestTokenService_Expired verifies a token is rejected once its TTL elapsed.
*/
func TestTokenService_Expired(t *testing.T) {
	service, err := NewTokenService("unit-test-secret", time.Hour)
	require.NoError(t, err)

	issuedAt := time.Now().Add(-2 * time.Hour)
	service.now = func() time.Time { return issuedAt }

	token, err := service.GenerateAccessToken(1, "zelda", "zelda@hyrule.example")
	require.NoError(t, err)

	service.now = time.Now
	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer, err := NewTokenService("secret-a", time.Hour)
	require.NoError(t, err)
	verifier, err := NewTokenService("secret-b", time.Hour)
	require.NoError(t, err)

	token, err := issuer.GenerateAccessToken(1, "zelda", "zelda@hyrule.example")
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_RejectsNoneAlgorithm guards against unsigned tokens.
*/
func TestTokenService_RejectsNoneAlgorithm(t *testing.T) {
	service, err := NewTokenService("unit-test-secret", time.Hour)
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           1,
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("triforce")
	require.NoError(t, err)

	assert.NotEqual(t, "triforce", hash)
	assert.True(t, CheckPasswordHash("triforce", hash))
	assert.False(t, CheckPasswordHash("ganon", hash))
}
