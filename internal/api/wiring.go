// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/gamelibrary/internal/core/developer"
	"github.com/taibuivan/gamelibrary/internal/core/game"
	"github.com/taibuivan/gamelibrary/internal/core/genre"
	"github.com/taibuivan/gamelibrary/internal/platform/lock"
	"github.com/taibuivan/gamelibrary/internal/platform/memstore"
	"github.com/taibuivan/gamelibrary/internal/platform/metrics"
	"github.com/taibuivan/gamelibrary/internal/platform/sec"
	"github.com/taibuivan/gamelibrary/internal/users/account"
	"github.com/taibuivan/gamelibrary/internal/users/auth"
	"github.com/taibuivan/gamelibrary/internal/users/library"
)

// # Storage Drivers

// Repositories bundles the repositories of one storage driver.
type Repositories struct {
	Developers developer.Repository
	Genres     genre.Repository
	Games      game.Repository
	Accounts   account.Repository
	Library    library.Repository
}

// PostgresRepositories builds the repositories backed by pool.
func PostgresRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Developers: developer.NewPostgresRepository(pool),
		Genres:     genre.NewPostgresRepository(pool),
		Games:      game.NewPostgresRepository(pool),
		Accounts:   account.NewPostgresRepository(pool),
		Library:    library.NewPostgresRepository(pool),
	}
}

// MemoryRepositories builds the repositories backed by the in-memory store.
func MemoryRepositories(db *memstore.DB) Repositories {
	return Repositories{
		Developers: developer.NewMemoryRepository(db),
		Genres:     genre.NewMemoryRepository(db),
		Games:      game.NewMemoryRepository(db),
		Accounts:   account.NewMemoryRepository(db),
		Library:    library.NewMemoryRepository(db),
	}
}

// # Domain Wiring

// NewDomainHandlers builds every service over repos and returns their handlers.
// Liveness and Readiness are left for the caller.
func NewDomainHandlers(
	repos Repositories,
	tokens *sec.TokenService,
	locker lock.Locker,
	events *metrics.Metrics,
	logger *slog.Logger,
) Handlers {
	developerService := developer.NewService(repos.Developers, logger)
	genreService := genre.NewService(repos.Genres, logger)
	gameService := game.NewService(repos.Games, repos.Developers, repos.Genres, logger)

	accountService := account.NewService(repos.Accounts, events, logger)
	authService := auth.NewService(repos.Accounts, tokens, events, logger)
	libraryService := library.NewService(repos.Library, repos.Accounts, repos.Games, locker, events, logger)

	return Handlers{
		Auth:       auth.NewHandler(authService),
		Users:      account.NewHandler(accountService),
		Library:    library.NewHandler(libraryService),
		Developers: developer.NewHandler(developerService),
		Genres:     genre.NewHandler(genreService),
		Games:      game.NewHandler(gameService),
	}
}
