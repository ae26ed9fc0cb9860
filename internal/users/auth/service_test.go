// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/gamelibrary/internal/platform/apperr"
	"github.com/taibuivan/gamelibrary/internal/platform/memstore"
	"github.com/taibuivan/gamelibrary/internal/platform/metrics"
	"github.com/taibuivan/gamelibrary/internal/platform/sec"
	"github.com/taibuivan/gamelibrary/internal/users/account"
	"github.com/taibuivan/gamelibrary/internal/users/auth"
)

type eventLog []string

func (events *eventLog) RecordEvent(event string) { *events = append(*events, event) }

type fixture struct {
	accounts *account.Service
	tokens   *sec.TokenService
	auth     *auth.Service
	events   *eventLog
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	t.Cleanup(sec.UseMinimumCost())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repository := account.NewMemoryRepository(memstore.New())

	tokens, err := sec.NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)

	events := &eventLog{}
	return &fixture{
		accounts: account.NewService(repository, &eventLog{}, logger),
		tokens:   tokens,
		auth:     auth.NewService(repository, tokens, events, logger),
		events:   events,
	}
}

func (f *fixture) register(t *testing.T) *account.User {
	t.Helper()
	user, err := f.accounts.Create(context.Background(), account.Input{
		Username: "samus",
		Password: "metroid",
		Email:    "samus@zebes.example",
	})
	require.NoError(t, err)
	return user
}

func TestService_LoginByEmail(t *testing.T) {
	f := newFixture(t)
	user := f.register(t)

	token, err := f.auth.Login(context.Background(), auth.LoginInput{Email: "Samus@Zebes.example", Password: "metroid"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer", token.TokenType)
	assert.Equal(t, int64(3600), token.ExpiresIn)

	claims, err := f.tokens.VerifyToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "samus", claims.Username)
	assert.Equal(t, "samus@zebes.example", claims.Email)
	assert.Equal(t, "1", claims.Subject)
	assert.Equal(t, eventLog{metrics.EventLoginSucceeded}, *f.events)
}

func TestService_LoginByUsername(t *testing.T) {
	f := newFixture(t)
	f.register(t)

	_, err := f.auth.Login(context.Background(), auth.LoginInput{Username: "samus", Password: "metroid"})
	assert.NoError(t, err)
}

func TestService_LoginRejects(t *testing.T) {
	tests := []struct {
		name  string
		input auth.LoginInput
		code  string
	}{
		{"wrong_password", auth.LoginInput{Email: "samus@zebes.example", Password: "ridley"}, apperr.CodeUnauthorized},
		{"unknown_email", auth.LoginInput{Email: "kraid@zebes.example", Password: "metroid"}, apperr.CodeUnauthorized},
		{"missing_identifier", auth.LoginInput{Password: "metroid"}, apperr.CodeValidation},
		{"missing_password", auth.LoginInput{Email: "samus@zebes.example"}, apperr.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.register(t)

			token, err := f.auth.Login(context.Background(), tt.input)
			assert.Nil(t, token)
			assert.True(t, apperr.HasCode(err, tt.code), "got %v", err)
			if tt.code == apperr.CodeUnauthorized {
				assert.Equal(t, "Invalid credentials", err.Error())
				assert.Equal(t, eventLog{metrics.EventLoginFailed}, *f.events)
			}
		})
	}
}

func TestService_LoginDeletedUser(t *testing.T) {
	f := newFixture(t)
	user := f.register(t)
	require.NoError(t, f.accounts.Delete(context.Background(), user.ID))

	_, err := f.auth.Login(context.Background(), auth.LoginInput{Email: "samus@zebes.example", Password: "metroid"})
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
}

func TestHandler_Login(t *testing.T) {
	f := newFixture(t)
	f.register(t)
	router := auth.NewHandler(f.auth).Routes()

	t.Run("success", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		body := strings.NewReader(`{"email":"samus@zebes.example","password":"metroid"}`)
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/login", body))

		require.Equal(t, http.StatusOK, recorder.Code)

		var envelope struct {
			Data auth.Token `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.NotEmpty(t, envelope.Data.AccessToken)
		assert.Equal(t, "Bearer", envelope.Data.TokenType)
	})

	t.Run("invalid_credentials", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		body := strings.NewReader(`{"email":"samus@zebes.example","password":"nope"}`)
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/login", body))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"error":"Invalid credentials"`)
	})

	t.Run("malformed_json", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{`)))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
