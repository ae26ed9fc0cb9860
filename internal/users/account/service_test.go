// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/gamelibrary/internal/platform/apperr"
	"github.com/taibuivan/gamelibrary/internal/platform/lifecycle"
	"github.com/taibuivan/gamelibrary/internal/platform/memstore"
	"github.com/taibuivan/gamelibrary/internal/platform/metrics"
	"github.com/taibuivan/gamelibrary/internal/platform/sec"
	"github.com/taibuivan/gamelibrary/internal/users/account"
)

type eventLog []string

func (events *eventLog) RecordEvent(event string) { *events = append(*events, event) }

func newService(t *testing.T) (*account.Service, *eventLog) {
	t.Helper()
	t.Cleanup(sec.UseMinimumCost())

	events := &eventLog{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return account.NewService(account.NewMemoryRepository(memstore.New()), events, logger), events
}

func samus() account.Input {
	return account.Input{Username: "samus", Password: "metroid", Email: "samus@zebes.example"}
}

func TestService_CreateHashesPassword(t *testing.T) {
	service, events := newService(t)

	user, err := service.Create(context.Background(), samus())
	require.NoError(t, err)

	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, lifecycle.Active, user.Status)
	assert.NotEqual(t, "metroid", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("metroid", user.PasswordHash))
	assert.Equal(t, eventLog{metrics.EventUserRegistered}, *events)
}

func TestService_CreateNormalizesEmail(t *testing.T) {
	service, _ := newService(t)

	input := samus()
	input.Email = "  Samus@Zebes.Example "
	user, err := service.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "samus@zebes.example", user.Email)
}

func TestService_CreateRejectsTakenEmail(t *testing.T) {
	ctx := context.Background()
	service, _ := newService(t)

	first, err := service.Create(ctx, samus())
	require.NoError(t, err)

	_, err = service.Create(ctx, samus())
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	assert.Equal(t, "Email already in use", err.Error())

	// Deleted accounts keep their email.
	require.NoError(t, service.Delete(ctx, first.ID))
	_, err = service.Create(ctx, samus())
	assert.Equal(t, "Email already in use", err.Error())
}

func TestService_CreateValidation(t *testing.T) {
	tests := []struct {
		name  string
		input account.Input
		field string
	}{
		{"short_username", account.Input{Username: "ab", Password: "pw", Email: "a@b.example"}, account.FieldUsername},
		{"missing_password", account.Input{Username: "samus", Email: "a@b.example"}, account.FieldPassword},
		{"bad_email", account.Input{Username: "samus", Password: "pw", Email: "not-an-email"}, account.FieldEmail},
		{"long_password", account.Input{Username: "samus", Password: strings.Repeat("x", 73), Email: "a@b.example"}, account.FieldPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newService(t)

			_, err := service.Create(context.Background(), tt.input)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, apperr.CodeValidation, ae.Code)
			require.NotEmpty(t, ae.Details)
			assert.Equal(t, tt.field, ae.Details[0].Field)
		})
	}
}

func TestService_UpdateRechecksEmail(t *testing.T) {
	ctx := context.Background()
	service, _ := newService(t)

	first, err := service.Create(ctx, samus())
	require.NoError(t, err)
	second, err := service.Create(ctx, account.Input{Username: "ridley", Password: "pw", Email: "ridley@zebes.example"})
	require.NoError(t, err)

	// Keeping one's own email is fine.
	input := samus()
	input.Username = "samus_aran"
	updated, err := service.Update(ctx, first.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "samus_aran", updated.Username)
	assert.Equal(t, first.CreatedAt, updated.CreatedAt)

	// Taking someone else's is not.
	_, err = service.Update(ctx, second.ID, samus())
	assert.Equal(t, "Email already in use", err.Error())

	_, err = service.Update(ctx, 99, samus())
	assert.True(t, apperr.IsNotFound(err))
}

func TestService_UpdateDeletedAccount(t *testing.T) {
	ctx := context.Background()
	service, _ := newService(t)

	user, err := service.Create(ctx, samus())
	require.NoError(t, err)
	require.NoError(t, service.Delete(ctx, user.ID))

	updated, err := service.Update(ctx, user.ID, samus())
	require.NoError(t, err)
	assert.Equal(t, lifecycle.Deleted, updated.Status)
}

func TestService_DeleteHidesAccount(t *testing.T) {
	ctx := context.Background()
	service, _ := newService(t)

	user, err := service.Create(ctx, samus())
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, user.ID))
	require.NoError(t, service.Delete(ctx, user.ID))

	_, err = service.GetByID(ctx, user.ID)
	assert.True(t, apperr.IsNotFound(err))

	users, err := service.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	assert.True(t, apperr.IsNotFound(service.Delete(ctx, 42)))
}

func TestMemoryRepository_FindActiveByUsernamePrefersOldest(t *testing.T) {
	ctx := context.Background()
	t.Cleanup(sec.UseMinimumCost())

	repository := account.NewMemoryRepository(memstore.New())
	service := account.NewService(repository, &eventLog{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	first, err := service.Create(ctx, account.Input{Username: "link", Password: "pw", Email: "a@hyrule.example"})
	require.NoError(t, err)
	_, err = service.Create(ctx, account.Input{Username: "link", Password: "pw", Email: "b@hyrule.example"})
	require.NoError(t, err)

	found, err := repository.FindActiveByUsername(ctx, "link")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	require.NoError(t, service.Delete(ctx, first.ID))
	found, err = repository.FindActiveByUsername(ctx, "link")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, found.ID)

	_, err = repository.FindActiveByEmail(ctx, "a@hyrule.example")
	assert.True(t, apperr.IsNotFound(err))
}
