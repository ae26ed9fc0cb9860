// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"cmp"
	"context"
	"slices"

	"github.com/taibuivan/gamelibrary/internal/platform/memstore"
)

// MemoryRepository implements [Repository] on the shared in-memory store.
type MemoryRepository struct {
	db *memstore.DB
}

func NewMemoryRepository(db *memstore.DB) *MemoryRepository {
	return &MemoryRepository{db: db}
}

func (repository *MemoryRepository) HasGame(_ context.Context, userID, gameID int64) (bool, error) {
	var exists bool
	err := repository.db.Read(func(tables *memstore.Tables) error {
		_, exists = tables.Library[memstore.LibraryKey{UserID: userID, GameID: gameID}]
		return nil
	})
	return exists, err
}

func (repository *MemoryRepository) AddGame(_ context.Context, userID, gameID int64) error {
	return repository.db.Write(func(tables *memstore.Tables) error {
		key := memstore.LibraryKey{UserID: userID, GameID: gameID}
		if _, exists := tables.Library[key]; exists {
			return errAlreadyInLibrary
		}
		tables.Library[key] = memstore.LibraryRow{
			Seq:     tables.NextID(memstore.SeqLibrary),
			AddedAt: repository.db.Now(),
		}
		return nil
	})
}

func (repository *MemoryRepository) RemoveGame(_ context.Context, userID, gameID int64) (bool, error) {
	var removed bool
	err := repository.db.Write(func(tables *memstore.Tables) error {
		key := memstore.LibraryKey{UserID: userID, GameID: gameID}
		if _, removed = tables.Library[key]; removed {
			delete(tables.Library, key)
		}
		return nil
	})
	return removed, err
}

func (repository *MemoryRepository) ListGameIDs(_ context.Context, userID int64) ([]int64, error) {
	type entry struct {
		gameID int64
		seq    int64
	}

	var entries []entry
	err := repository.db.Read(func(tables *memstore.Tables) error {
		for key, row := range tables.Library {
			if key.UserID == userID {
				entries = append(entries, entry{gameID: key.GameID, seq: row.Seq})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(entries, func(a, b entry) int { return cmp.Compare(a.seq, b.seq) })
	ids := make([]int64, 0, len(entries))
	for _, item := range entries {
		ids = append(ids, item.gameID)
	}
	return ids, nil
}

func (repository *MemoryRepository) HasReview(_ context.Context, userID, gameID int64) (bool, error) {
	var exists bool
	err := repository.db.Read(func(tables *memstore.Tables) error {
		exists = hasReview(tables, userID, gameID)
		return nil
	})
	return exists, err
}

func hasReview(tables *memstore.Tables, userID, gameID int64) bool {
	for _, row := range tables.Reviews {
		if row.UserID == userID && row.GameID == gameID {
			return true
		}
	}
	return false
}

func (repository *MemoryRepository) AddReview(_ context.Context, review *ReviewRecord) error {
	return repository.db.Write(func(tables *memstore.Tables) error {
		if _, ok := tables.Library[memstore.LibraryKey{UserID: review.UserID, GameID: review.GameID}]; !ok {
			return errNotInLibrary
		}
		if hasReview(tables, review.UserID, review.GameID) {
			return errAlreadyReviewed
		}

		row := memstore.ReviewRow{
			ID:        tables.NextID(memstore.SeqReview),
			UserID:    review.UserID,
			GameID:    review.GameID,
			Comment:   review.Comment,
			Rating:    review.Rating,
			CreatedAt: repository.db.Now(),
		}
		tables.Reviews[row.ID] = row

		review.ID = row.ID
		review.CreatedAt = row.CreatedAt
		return nil
	})
}
