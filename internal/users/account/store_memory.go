// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"

	"github.com/taibuivan/gamelibrary/internal/platform/apperr"
	"github.com/taibuivan/gamelibrary/internal/platform/lifecycle"
	"github.com/taibuivan/gamelibrary/internal/platform/memstore"
	"github.com/taibuivan/gamelibrary/pkg/slice"
)

// MemoryRepository implements [Repository] on the shared in-memory store.
type MemoryRepository struct {
	db *memstore.DB
}

func NewMemoryRepository(db *memstore.DB) *MemoryRepository {
	return &MemoryRepository{db: db}
}

func fromRow(row memstore.AccountRow) *User {
	return &User{
		ID:           row.ID,
		Username:     row.Username,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Status:       row.Status,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func (repository *MemoryRepository) ListActive(_ context.Context) ([]*User, error) {
	var users []*User
	err := repository.db.Read(func(tables *memstore.Tables) error {
		active := slice.Filter(memstore.Ordered(tables.Accounts), func(row memstore.AccountRow) bool {
			return !row.Status.IsDeleted()
		})
		users = slice.Map(active, fromRow)
		return nil
	})
	return users, err
}

func (repository *MemoryRepository) FindByID(_ context.Context, id int64) (*User, error) {
	var user *User
	err := repository.db.Read(func(tables *memstore.Tables) error {
		row, ok := tables.Accounts[id]
		if !ok {
			return apperr.NotFound(resource)
		}
		user = fromRow(row)
		return nil
	})
	return user, err
}

func (repository *MemoryRepository) FindActiveByEmail(_ context.Context, email string) (*User, error) {
	return repository.findActive(func(row memstore.AccountRow) bool { return row.Email == email })
}

func (repository *MemoryRepository) FindActiveByUsername(_ context.Context, username string) (*User, error) {
	return repository.findActive(func(row memstore.AccountRow) bool { return row.Username == username })
}

func (repository *MemoryRepository) findActive(match func(row memstore.AccountRow) bool) (*User, error) {
	var user *User
	err := repository.db.Read(func(tables *memstore.Tables) error {
		for _, row := range memstore.Ordered(tables.Accounts) {
			if !row.Status.IsDeleted() && match(row) {
				user = fromRow(row)
				return nil
			}
		}
		return apperr.NotFound(resource)
	})
	return user, err
}

func (repository *MemoryRepository) EmailTaken(_ context.Context, email string, excludeID int64) (bool, error) {
	var taken bool
	err := repository.db.Read(func(tables *memstore.Tables) error {
		taken = emailTaken(tables, email, excludeID)
		return nil
	})
	return taken, err
}

func emailTaken(tables *memstore.Tables, email string, excludeID int64) bool {
	for id, row := range tables.Accounts {
		if id != excludeID && row.Email == email {
			return true
		}
	}
	return false
}

func (repository *MemoryRepository) Create(_ context.Context, user *User) error {
	return repository.db.Write(func(tables *memstore.Tables) error {
		if emailTaken(tables, user.Email, 0) {
			return errEmailInUse
		}

		now := repository.db.Now()
		row := memstore.AccountRow{
			ID:           tables.NextID(memstore.SeqAccount),
			Username:     user.Username,
			Email:        user.Email,
			PasswordHash: user.PasswordHash,
			Status:       lifecycle.Active,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		tables.Accounts[row.ID] = row
		*user = *fromRow(row)
		return nil
	})
}

func (repository *MemoryRepository) Update(_ context.Context, user *User) error {
	return repository.db.Write(func(tables *memstore.Tables) error {
		row, ok := tables.Accounts[user.ID]
		if !ok {
			return apperr.NotFound(resource)
		}
		if emailTaken(tables, user.Email, user.ID) {
			return errEmailInUse
		}

		row.Username = user.Username
		row.Email = user.Email
		row.PasswordHash = user.PasswordHash
		row.UpdatedAt = repository.db.Now()
		tables.Accounts[row.ID] = row
		*user = *fromRow(row)
		return nil
	})
}

func (repository *MemoryRepository) SoftDelete(_ context.Context, id int64) error {
	return repository.db.Write(func(tables *memstore.Tables) error {
		row, ok := tables.Accounts[id]
		if !ok {
			return apperr.NotFound(resource)
		}
		row.Status = lifecycle.Deleted
		row.UpdatedAt = repository.db.Now()
		tables.Accounts[id] = row
		return nil
	})
}
