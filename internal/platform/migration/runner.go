// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration provides a thin wrapper around golang-migrate for
// running database schema migrations.
//
// # Architecture
//
// Migrations are applied during application startup so the schema is always
// current before traffic is served. The SQL files ship inside the binary; a
// directory on disk may be supplied instead for local iteration.
package migration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// file source reads .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/taibuivan/gamelibrary/internal/platform/database/migrations"
)

// RunUp applies all pending UP migrations.
//
// # Parameters
//   - dsn: A postgres:// URL.
//   - migrationsPath: Directory with .sql files; empty selects the embedded set.
//   - logger: Structured logger for migration events.
func RunUp(dsn string, migrationsPath string, logger *slog.Logger) error {
	migrator, err := newMigrator(toPgx5DSN(dsn), migrationsPath)
	if err != nil {
		return err
	}
	defer func() {
		sourceError, dbError := migrator.Close()
		if sourceError != nil {
			logger.Error("migration_source_close_failed", slog.Any("error", sourceError))
		}
		if dbError != nil {
			logger.Error("migration_db_close_failed", slog.Any("error", dbError))
		}
	}()

	migrator.Log = &migrateLogger{logger: logger}

	currentVersion, isDirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: failed to get current version: %w", err)
	}
	if isDirty {
		return fmt.Errorf("migration: database is dirty at version %d", currentVersion)
	}

	logger.Info("migration_started", slog.Uint64("current_version", uint64(currentVersion)))

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migration_already_up_to_date")
			return nil
		}
		return fmt.Errorf("migration: up failed: %w", err)
	}

	newVersion, _, _ := migrator.Version()
	logger.Info("migration_successful",
		slog.Uint64("from_version", uint64(currentVersion)),
		slog.Uint64("to_version", uint64(newVersion)),
	)
	return nil
}

func newMigrator(databaseURL, migrationsPath string) (*migrate.Migrate, error) {
	if migrationsPath != "" {
		migrator, err := migrate.New("file://"+migrationsPath, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("migration: failed to initialize from %s: %w", migrationsPath, err)
		}
		return migrator, nil
	}

	source, err := iofs.New(migrations.Files, ".")
	if err != nil {
		return nil, fmt.Errorf("migration: failed to open embedded files: %w", err)
	}

	migrator, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("migration: failed to initialize: %w", err)
	}
	return migrator, nil
}

// toPgx5DSN rewrites postgres:// and postgresql:// URLs to the pgx5:// scheme
// the golang-migrate pgx/v5 driver registers.
func toPgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// migrateLogger adapts golang-migrate's logger interface to slog.
type migrateLogger struct {
	logger *slog.Logger
}

// Printf implements migrate.Logger.
func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// Verbose implements migrate.Logger.
func (l *migrateLogger) Verbose() bool {
	return l.logger.Enabled(context.Background(), slog.LevelDebug)
}
