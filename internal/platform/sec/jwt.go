// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via the auth package's TokenProvider interface.
package sec

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySecret is returned when a [TokenService] is built without a signing key.
var ErrEmptySecret = errors.New("sec: signing secret must not be empty")

// AuthClaims represents the payload embedded inside a JWT Access Token.
//
// The identity is carried in the token so [middleware.Authenticate] can rebuild
// the caller WITHOUT a store lookup per request.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID   int64  `json:"uid"`
	Username string `json:"unm"`
	Email    string `json:"eml"`
}

// TokenService handles generation and verification of JWT tokens using HS256
// and a fixed shared secret.
type TokenService struct {
	secret     []byte
	timeToLive time.Duration
	now        func() time.Time
}

// NewTokenService creates a new TokenService signing with secret. Tokens expire
// after timeToLive.
func NewTokenService(secret string, timeToLive time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	return &TokenService{
		secret:     []byte(secret),
		timeToLive: timeToLive,
		now:        time.Now,
	}, nil
}

// TTL returns the lifetime applied to every issued token.
func (service *TokenService) TTL() time.Duration {
	return service.timeToLive
}

// GenerateAccessToken creates a new JWT access token for a user.
func (service *TokenService) GenerateAccessToken(userID int64, username, email string) (string, error) {
	currentTime := service.now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.timeToLive)),
		},
		UserID:   userID,
		Username: username,
		Email:    email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and expiry of a JWT string.
// Issuer and audience are not validated.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	}, jwt.WithTimeFunc(service.now), jwt.WithExpirationRequired())

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	return claims, nil
}
