package developer

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

func fromRow(row memstore.NamedRow) *Developer {
	return &Developer{
		ID:        row.ID,
		Name:      row.Name,
		Status:    row.Status,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func (repository *MemoryRepository) ListActive(_ context.Context) ([]*Developer, error) {
	developers := []*Developer{}
	err := repository.db.Read(func(tables *memstore.Tables) error {
		for _, row := range memstore.Ordered(tables.Developers) {
			if !row.Status.IsDeleted() {
				developers = append(developers, fromRow(row))
			}
		}
		return nil
	})
	return developers, err
}

func (repository *MemoryRepository) FindByID(_ context.Context, id int64) (*Developer, error) {
	var developer *Developer
	err := repository.db.Read(func(tables *memstore.Tables) error {
		row, ok := tables.Developers[id]
		if !ok {
			return apperr.NotFound(resource)
		}
		developer = fromRow(row)
		return nil
	})
	return developer, err
}

func (repository *MemoryRepository) Create(_ context.Context, developer *Developer) error {
	return repository.db.Write(func(tables *memstore.Tables) error {
		now := repository.db.Now()
		row := memstore.NamedRow{
			ID:        tables.NextID(memstore.SeqDeveloper),
			Name:      developer.Name,
			Status:    lifecycle.Active,
			CreatedAt: now,
			UpdatedAt: now,
		}
		tables.Developers[row.ID] = row
		*developer = *fromRow(row)
		return nil
	})
}

func (repository *MemoryRepository) Update(_ context.Context, developer *Developer) error {
	return repository.db.Write(func(tables *memstore.Tables) error {
		row, ok := tables.Developers[developer.ID]
		if !ok {
			return apperr.NotFound(resource)
		}
		row.Name = developer.Name
		row.UpdatedAt = repository.db.Now()
		tables.Developers[row.ID] = row
		*developer = *fromRow(row)
		return nil
	})
}

func (repository *MemoryRepository) SoftDelete(_ context.Context, id int64) error {
	return repository.db.Write(func(tables *memstore.Tables) error {
		row, ok := tables.Developers[id]
		if !ok {
			return apperr.NotFound(resource)
		}
		row.Status = lifecycle.Deleted
		row.UpdatedAt = repository.db.Now()
		tables.Developers[id] = row
		return nil
	})
}
