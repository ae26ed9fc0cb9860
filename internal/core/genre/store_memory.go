package genre

import (
	"context"

	"github.com/taibuivan/gamelibrary/internal/platform/apperr"
	"github.com/taibuivan/gamelibrary/internal/platform/lifecycle"
	"github.com/taibuivan/gamelibrary/internal/platform/memstore"
)

type MemoryRepository struct {
	db *memstore.DB
}

func NewMemoryRepository(db *memstore.DB) *MemoryRepository {
	return &MemoryRepository{db: db}
}

func fromRow(row memstore.NamedRow) *Genre {
	return &Genre{
		ID:        row.ID,
		Name:      row.Name,
		Status:    row.Status,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func (repository *MemoryRepository) ListActive(_ context.Context) ([]*Genre, error) {
	genres := []*Genre{}
	err := repository.db.Read(func(tables *memstore.Tables) error {
		for _, row := range memstore.Ordered(tables.Genres) {
			if !row.Status.IsDeleted() {
				genres = append(genres, fromRow(row))
			}
		}
		return nil
	})
	return genres, err
}

func (repository *MemoryRepository) FindByID(_ context.Context, id int64) (*Genre, error) {
	var genre *Genre
	err := repository.db.Read(func(tables *memstore.Tables) error {
		row, ok := tables.Genres[id]
		if !ok {
			return apperr.NotFound(resource)
		}
		genre = fromRow(row)
		return nil
	})
	return genre, err
}

func (repository *MemoryRepository) FindByIDs(_ context.Context, ids []int64) ([]*Genre, error) {
	genres := []*Genre{}
	err := repository.db.Read(func(tables *memstore.Tables) error {
		wanted := make(map[int64]memstore.NamedRow, len(ids))
		for _, id := range ids {
			if row, ok := tables.Genres[id]; ok {
				wanted[id] = row
			}
		}
		for _, row := range memstore.Ordered(wanted) {
			genres = append(genres, fromRow(row))
		}
		return nil
	})
	return genres, err
}

func (repository *MemoryRepository) Create(_ context.Context, genre *Genre) error {
	return repository.db.Write(func(tables *memstore.Tables) error {
		now := repository.db.Now()
		row := memstore.NamedRow{
			ID:        tables.NextID(memstore.SeqGenre),
			Name:      genre.Name,
			Status:    lifecycle.Active,
			CreatedAt: now,
			UpdatedAt: now,
		}
		tables.Genres[row.ID] = row
		*genre = *fromRow(row)
		return nil
	})
}

func (repository *MemoryRepository) Update(_ context.Context, genre *Genre) error {
	return repository.db.Write(func(tables *memstore.Tables) error {
		row, ok := tables.Genres[genre.ID]
		if !ok {
			return apperr.NotFound(resource)
		}
		row.Name = genre.Name
		row.UpdatedAt = repository.db.Now()
		tables.Genres[row.ID] = row
		*genre = *fromRow(row)
		return nil
	})
}

func (repository *MemoryRepository) SoftDelete(_ context.Context, id int64) error {
	return repository.db.Write(func(tables *memstore.Tables) error {
		row, ok := tables.Genres[id]
		if !ok {
			return apperr.NotFound(resource)
		}
		row.Status = lifecycle.Deleted
		row.UpdatedAt = repository.db.Now()
		tables.Genres[id] = row
		return nil
	})
}
