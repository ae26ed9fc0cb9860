// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package memstore is the in-process storage engine behind STORAGE_DRIVER=memory.

It plays the role pgxpool plays for Postgres: one shared handle that every
domain repository is built on. Tables are plain maps of row values guarded by
a single RWMutex, so a write that touches several tables (a game and its genre
links, a review and the library it depends on) is observed atomically.

# Transactions

[DB.Write] snapshots the tables before running its callback and restores the
snapshot if the callback returns an error. Rows are values; callers replace
slices held by a row instead of mutating them so the snapshot stays intact.
*/
package memstore

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/taibuivan/gamelibrary/internal/platform/lifecycle"
)

// # Rows

// NamedRow stores developers and genres.
type NamedRow struct {
	ID        int64
	Name      string
	Status    lifecycle.Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GameRow stores a game and the ids of its genres.
type GameRow struct {
	ID          int64
	Title       string
	Description string
	DeveloperID int64
	GenreIDs    []int64
	Status      lifecycle.Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AccountRow stores a user account.
type AccountRow struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Status       lifecycle.Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LibraryKey identifies one library entry.
type LibraryKey struct {
	UserID int64
	GameID int64
}

// LibraryRow records when a game joined a library. Seq preserves insertion order.
type LibraryRow struct {
	Seq     int64
	AddedAt time.Time
}

// ReviewRow stores a review.
type ReviewRow struct {
	ID        int64
	UserID    int64
	GameID    int64
	Comment   string
	Rating    int
	CreatedAt time.Time
}

// # Tables

// Tables is the full data set. Access it only inside [DB.Read] or [DB.Write].
type Tables struct {
	Developers map[int64]NamedRow
	Genres     map[int64]NamedRow
	Games      map[int64]GameRow
	Accounts   map[int64]AccountRow
	Library    map[LibraryKey]LibraryRow
	Reviews    map[int64]ReviewRow

	sequences map[string]int64
}

// Sequence names handed to [Tables.NextID].
const (
	SeqDeveloper = "developer"
	SeqGenre     = "genre"
	SeqGame      = "game"
	SeqAccount   = "account"
	SeqLibrary   = "library"
	SeqReview    = "review"
)

// NextID advances and returns the named sequence, starting at 1.
func (tables *Tables) NextID(sequence string) int64 {
	tables.sequences[sequence]++
	return tables.sequences[sequence]
}

func newTables() Tables {
	return Tables{
		Developers: make(map[int64]NamedRow),
		Genres:     make(map[int64]NamedRow),
		Games:      make(map[int64]GameRow),
		Accounts:   make(map[int64]AccountRow),
		Library:    make(map[LibraryKey]LibraryRow),
		Reviews:    make(map[int64]ReviewRow),
		sequences:  make(map[string]int64),
	}
}

func (tables *Tables) clone() Tables {
	return Tables{
		Developers: maps.Clone(tables.Developers),
		Genres:     maps.Clone(tables.Genres),
		Games:      maps.Clone(tables.Games),
		Accounts:   maps.Clone(tables.Accounts),
		Library:    maps.Clone(tables.Library),
		Reviews:    maps.Clone(tables.Reviews),
		sequences:  maps.Clone(tables.sequences),
	}
}

// # Engine

// DB is the shared in-memory database handle.
type DB struct {
	mu     sync.RWMutex
	tables Tables
	now    func() time.Time
}

// New returns an empty database.
func New() *DB {
	return &DB{tables: newTables(), now: time.Now}
}

// Now is the clock used for created/updated timestamps.
func (db *DB) Now() time.Time {
	return db.now().UTC()
}

// Read runs fn under a shared lock.
func (db *DB) Read(fn func(tables *Tables) error) error {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return fn(&db.tables)
}

// Write runs fn under an exclusive lock, discarding its changes on error.
func (db *DB) Write(fn func(tables *Tables) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	snapshot := db.tables.clone()
	if err := fn(&db.tables); err != nil {
		db.tables = snapshot
		return err
	}
	return nil
}

// Ping always succeeds; it lets readiness treat both drivers alike.
func (db *DB) Ping() error { return nil }

// # Helpers

// Ordered returns the values of m sorted by key, which is insertion order for
// sequence-assigned ids.
func Ordered[V any](m map[int64]V) []V {
	keys := slices.Sorted(maps.Keys(m))
	values := make([]V, 0, len(keys))
	for _, key := range keys {
		values = append(values, m[key])
	}
	return values
}
