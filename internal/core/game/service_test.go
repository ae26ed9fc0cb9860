package game_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/gamelibrary/internal/core/developer"
	"github.com/taibuivan/gamelibrary/internal/core/game"
	"github.com/taibuivan/gamelibrary/internal/core/genre"
	"github.com/taibuivan/gamelibrary/internal/platform/apperr"
	"github.com/taibuivan/gamelibrary/internal/platform/lifecycle"
	"github.com/taibuivan/gamelibrary/internal/platform/memstore"
)

type fixture struct {
	db         *memstore.DB
	developers *developer.Service
	genres     *genre.Service
	games      *game.Service
}

func newFixture() *fixture {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := memstore.New()

	developerRepository := developer.NewMemoryRepository(db)
	genreRepository := genre.NewMemoryRepository(db)

	return &fixture{
		db:         db,
		developers: developer.NewService(developerRepository, logger),
		genres:     genre.NewService(genreRepository, logger),
		games:      game.NewService(game.NewMemoryRepository(db), developerRepository, genreRepository, logger),
	}
}

// seed creates Nintendo (1), Adventure (1) and Puzzle (2).
func (f *fixture) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	_, err := f.developers.Create(ctx, "Nintendo")
	require.NoError(t, err)
	_, err = f.genres.Create(ctx, "Adventure")
	require.NoError(t, err)
	_, err = f.genres.Create(ctx, "Puzzle")
	require.NoError(t, err)
}

func zelda(genreIDs ...int64) game.Input {
	return game.Input{
		Title:       "Zelda",
		Description: "An adventure across Hyrule",
		DeveloperID: 1,
		GenreIDs:    genreIDs,
	}
}

func TestService_CreateProjectsReferences(t *testing.T) {
	f := newFixture()
	f.seed(t)

	created, err := f.games.Create(context.Background(), zelda(2, 1, 1))
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, lifecycle.Active, created.Status)
	assert.Equal(t, game.Ref{ID: 1, Name: "Nintendo"}, created.Developer)
	assert.Equal(t, []game.Ref{{ID: 1, Name: "Adventure"}, {ID: 2, Name: "Puzzle"}}, created.Genres)

	found, err := f.games.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Genres, found.Genres)
}

func TestService_CreateReferenceChecks(t *testing.T) {
	tests := []struct {
		name    string
		input   game.Input
		message string
	}{
		{"unknown_developer", game.Input{Title: "Zelda", Description: "d", DeveloperID: 9}, "Developer not found"},
		{"unknown_genre", zelda(1, 99), "One or more genres not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.seed(t)

			_, err := f.games.Create(context.Background(), tt.input)
			require.Error(t, err)
			assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
			assert.Equal(t, tt.message, err.Error())

			list, err := f.games.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, list, "a rejected game must not be persisted")
		})
	}
}

func TestService_CreateValidation(t *testing.T) {
	f := newFixture()
	f.seed(t)

	_, err := f.games.Create(context.Background(), game.Input{DeveloperID: 0})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeValidation, ae.Code)

	fields := map[string]bool{}
	for _, detail := range ae.Details {
		fields[detail.Field] = true
	}
	assert.True(t, fields[game.FieldTitle])
	assert.True(t, fields[game.FieldDescription])
	assert.True(t, fields[game.FieldDeveloperID])
}

func TestService_DeletedReferencesAreResolvable(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seed(t)

	require.NoError(t, f.developers.Delete(ctx, 1))
	require.NoError(t, f.genres.Delete(ctx, 1))

	created, err := f.games.Create(ctx, zelda(1))
	require.NoError(t, err)

	list, err := f.games.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Nintendo", list[0].Developer.Name)
	assert.Equal(t, created.Genres, list[0].Genres)
}

func TestService_UpdateReplacesGenreSet(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seed(t)

	created, err := f.games.Create(ctx, zelda(1))
	require.NoError(t, err)

	input := zelda(2)
	input.Title = "Zelda II"
	updated, err := f.games.Update(ctx, created.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Zelda II", updated.Title)
	assert.Equal(t, []game.Ref{{ID: 2, Name: "Puzzle"}}, updated.Genres)

	_, err = f.games.Update(ctx, 42, input)
	assert.True(t, apperr.IsNotFound(err))

	_, err = f.games.Update(ctx, created.ID, zelda(7))
	assert.Equal(t, "One or more genres not found", err.Error())

	found, err := f.games.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []game.Ref{{ID: 2, Name: "Puzzle"}}, found.Genres, "failed update must leave genres untouched")
}

func TestService_DeleteIsIdempotentAndHides(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seed(t)

	created, err := f.games.Create(ctx, zelda())
	require.NoError(t, err)
	assert.Empty(t, created.Genres)

	require.NoError(t, f.games.Delete(ctx, created.ID))
	require.NoError(t, f.games.Delete(ctx, created.ID))

	_, err = f.games.GetByID(ctx, created.ID)
	assert.True(t, apperr.IsNotFound(err))
	_, err = f.games.GetDetails(ctx, created.ID)
	assert.True(t, apperr.IsNotFound(err))

	assert.True(t, apperr.IsNotFound(f.games.Delete(ctx, 404)))
}

func TestService_GetDetailsAverageRating(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seed(t)

	created, err := f.games.Create(ctx, zelda(1))
	require.NoError(t, err)

	details, err := f.games.GetDetails(ctx, created.ID)
	require.NoError(t, err)
	assert.Zero(t, details.AverageRating)
	assert.Empty(t, details.Reviews)

	require.NoError(t, f.db.Write(func(tables *memstore.Tables) error {
		tables.Accounts[1] = memstore.AccountRow{ID: 1, Username: "link"}
		tables.Accounts[2] = memstore.AccountRow{ID: 2, Username: "zelda"}
		tables.Reviews[1] = memstore.ReviewRow{ID: 1, UserID: 1, GameID: created.ID, Comment: "Great", Rating: 5}
		tables.Reviews[2] = memstore.ReviewRow{ID: 2, UserID: 2, GameID: created.ID, Rating: 2}
		return nil
	}))

	details, err = f.games.GetDetails(ctx, created.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, details.AverageRating, 1e-9)
	require.Len(t, details.Reviews, 2)
	assert.Equal(t, game.ReviewAuthor{ID: 1, Username: "link"}, details.Reviews[0].User)
}

func TestAverageRating(t *testing.T) {
	assert.Zero(t, game.AverageRating(nil))
	assert.InDelta(t, 4.0, game.AverageRating([]game.Review{{Rating: 5}, {Rating: 3}}), 1e-9)
}
