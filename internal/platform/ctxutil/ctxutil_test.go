// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/gamelibrary/internal/platform/ctxutil"
	"github.com/taibuivan/gamelibrary/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "req-7f3a"

	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a request logger replaces the default one.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_AuthUser verifies that the bearer identity survives the context round trip.
*/
func TestContext_AuthUser(t *testing.T) {
	ctx := context.Background()
	claims := &sec.AuthClaims{
		UserID:   7,
		Username: "samus",
		Email:    "samus@zebes.example",
	}

	assert.Nil(t, ctxutil.GetAuthUser(ctx))

	ctx = ctxutil.WithAuthUser(ctx, claims)
	retrieved := ctxutil.GetAuthUser(ctx)

	if assert.NotNil(t, retrieved) {
		assert.Equal(t, int64(7), retrieved.UserID)
		assert.Equal(t, "samus", retrieved.Username)
	}
}
