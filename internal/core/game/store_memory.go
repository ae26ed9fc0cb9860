package game

import (
	"context"

	"github.com/taibuivan/gamelibrary/internal/platform/apperr"
	"github.com/taibuivan/gamelibrary/internal/platform/lifecycle"
	"github.com/taibuivan/gamelibrary/internal/platform/memstore"
	"github.com/taibuivan/gamelibrary/pkg/slice"
)

type MemoryRepository struct {
	db *memstore.DB
}

func NewMemoryRepository(db *memstore.DB) *MemoryRepository {
	return &MemoryRepository{db: db}
}

// project joins developer and genre names onto a stored row.
func project(tables *memstore.Tables, row memstore.GameRow) *Game {
	game := &Game{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Developer:   Ref{ID: row.DeveloperID, Name: tables.Developers[row.DeveloperID].Name},
		Status:      row.Status,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}

	game.Genres = slice.Map(slice.Unique(row.GenreIDs), func(genreID int64) Ref {
		return Ref{ID: genreID, Name: tables.Genres[genreID].Name}
	})
	return game
}

func (repository *MemoryRepository) ListActive(_ context.Context) ([]*Game, error) {
	games := []*Game{}
	err := repository.db.Read(func(tables *memstore.Tables) error {
		for _, row := range memstore.Ordered(tables.Games) {
			if !row.Status.IsDeleted() {
				games = append(games, project(tables, row))
			}
		}
		return nil
	})
	return games, err
}

func (repository *MemoryRepository) FindByID(_ context.Context, id int64) (*Game, error) {
	var game *Game
	err := repository.db.Read(func(tables *memstore.Tables) error {
		row, ok := tables.Games[id]
		if !ok {
			return apperr.NotFound(resource)
		}
		game = project(tables, row)
		return nil
	})
	return game, err
}

func (repository *MemoryRepository) FindByIDs(_ context.Context, ids []int64) ([]*Game, error) {
	games := []*Game{}
	err := repository.db.Read(func(tables *memstore.Tables) error {
		for _, id := range ids {
			if row, ok := tables.Games[id]; ok {
				games = append(games, project(tables, row))
			}
		}
		return nil
	})
	return games, err
}

// checkReferences mirrors the foreign keys of the relational schema.
func checkReferences(tables *memstore.Tables, game *Game) error {
	if _, ok := tables.Developers[game.Developer.ID]; !ok {
		return apperr.ValidationError("Developer references a missing record")
	}
	for _, genreID := range game.GenreIDs() {
		if _, ok := tables.Genres[genreID]; !ok {
			return apperr.ValidationError("Genre references a missing record")
		}
	}
	return nil
}

func (repository *MemoryRepository) Create(_ context.Context, game *Game) error {
	return repository.db.Write(func(tables *memstore.Tables) error {
		if err := checkReferences(tables, game); err != nil {
			return err
		}

		now := repository.db.Now()
		row := memstore.GameRow{
			ID:          tables.NextID(memstore.SeqGame),
			Title:       game.Title,
			Description: game.Description,
			DeveloperID: game.Developer.ID,
			GenreIDs:    slice.Unique(game.GenreIDs()),
			Status:      lifecycle.Active,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		tables.Games[row.ID] = row
		*game = *project(tables, row)
		return nil
	})
}

func (repository *MemoryRepository) Update(_ context.Context, game *Game) error {
	return repository.db.Write(func(tables *memstore.Tables) error {
		row, ok := tables.Games[game.ID]
		if !ok {
			return apperr.NotFound(resource)
		}
		if err := checkReferences(tables, game); err != nil {
			return err
		}

		row.Title = game.Title
		row.Description = game.Description
		row.DeveloperID = game.Developer.ID
		row.GenreIDs = slice.Unique(game.GenreIDs())
		row.UpdatedAt = repository.db.Now()
		tables.Games[row.ID] = row
		*game = *project(tables, row)
		return nil
	})
}

func (repository *MemoryRepository) SoftDelete(_ context.Context, id int64) error {
	return repository.db.Write(func(tables *memstore.Tables) error {
		row, ok := tables.Games[id]
		if !ok {
			return apperr.NotFound(resource)
		}
		row.Status = lifecycle.Deleted
		row.UpdatedAt = repository.db.Now()
		tables.Games[id] = row
		return nil
	})
}

func (repository *MemoryRepository) ListReviews(_ context.Context, gameID int64) ([]Review, error) {
	reviews := []Review{}
	err := repository.db.Read(func(tables *memstore.Tables) error {
		for _, row := range memstore.Ordered(tables.Reviews) {
			if row.GameID != gameID {
				continue
			}
			reviews = append(reviews, Review{
				ID:      row.ID,
				Comment: row.Comment,
				Rating:  row.Rating,
				User:    ReviewAuthor{ID: row.UserID, Username: tables.Accounts[row.UserID].Username},
			})
		}
		return nil
	})
	return reviews, err
}
