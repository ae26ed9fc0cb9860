package developer_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/gamelibrary/internal/core/developer"
	"github.com/taibuivan/gamelibrary/internal/platform/apperr"
	"github.com/taibuivan/gamelibrary/internal/platform/lifecycle"
	"github.com/taibuivan/gamelibrary/internal/platform/memstore"
)

func newService() *developer.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return developer.NewService(developer.NewMemoryRepository(memstore.New()), logger)
}

func TestService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	service := newService()

	created, err := service.Create(ctx, "  Nintendo ")
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Nintendo", created.Name)
	assert.Equal(t, lifecycle.Active, created.Status)

	found, err := service.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, found.Name)
}

func TestService_CreateValidation(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"too_long", strings.Repeat("n", developer.MaxNameLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newService().Create(context.Background(), tt.input)
			assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
		})
	}
}

func TestService_DeleteHidesFromListAndGet(t *testing.T) {
	ctx := context.Background()
	service := newService()

	nintendo, err := service.Create(ctx, "Nintendo")
	require.NoError(t, err)
	_, err = service.Create(ctx, "Sega")
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, nintendo.ID))
	require.NoError(t, service.Delete(ctx, nintendo.ID), "second delete must succeed")

	list, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Sega", list[0].Name)

	_, err = service.GetByID(ctx, nintendo.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestService_UpdateDeleted(t *testing.T) {
	ctx := context.Background()
	service := newService()

	created, err := service.Create(ctx, "Nintendo")
	require.NoError(t, err)
	require.NoError(t, service.Delete(ctx, created.ID))

	updated, err := service.Update(ctx, created.ID, "Nintendo EPD")
	require.NoError(t, err)
	assert.Equal(t, "Nintendo EPD", updated.Name)
	assert.Equal(t, lifecycle.Deleted, updated.Status)
}

func TestService_MissingDeveloper(t *testing.T) {
	ctx := context.Background()
	service := newService()

	_, err := service.GetByID(ctx, 99)
	assert.True(t, apperr.IsNotFound(err))

	_, err = service.Update(ctx, 99, "Capcom")
	assert.True(t, apperr.IsNotFound(err))

	err = service.Delete(ctx, 99)
	assert.True(t, apperr.IsNotFound(err))
	assert.Equal(t, "Developer not found", err.Error())
}
