// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/gamelibrary/internal/platform/database/schema"
	"github.com/taibuivan/gamelibrary/internal/platform/dberr"
)

const (
	entryResource  = "Library entry"
	reviewResource = "Review"
)

// PostgresRepository implements [Repository] on library.entry and social.review.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a Postgres-backed library repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// # Library Entries

func (repository *PostgresRepository) HasGame(context context.Context, userID, gameID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.LibraryEntry.Table, schema.LibraryEntry.UserID, schema.LibraryEntry.GameID,
	)

	var exists bool
	if err := repository.pool.QueryRow(context, query, userID, gameID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, entryResource, "check")
	}
	return exists, nil
}

func (repository *PostgresRepository) AddGame(context context.Context, userID, gameID int64) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		schema.LibraryEntry.Table, schema.LibraryEntry.UserID, schema.LibraryEntry.GameID,
	)

	_, err := repository.pool.Exec(context, query, userID, gameID)
	if dberr.IsUniqueViolation(err, "") {
		return errAlreadyInLibrary
	}
	return dberr.Wrap(err, entryResource, "create")
}

func (repository *PostgresRepository) RemoveGame(context context.Context, userID, gameID int64) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.LibraryEntry.Table, schema.LibraryEntry.UserID, schema.LibraryEntry.GameID,
	)

	cmd, err := repository.pool.Exec(context, query, userID, gameID)
	if err != nil {
		return false, dberr.Wrap(err, entryResource, "delete")
	}
	return cmd.RowsAffected() > 0, nil
}

func (repository *PostgresRepository) ListGameIDs(context context.Context, userID int64) ([]int64, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s, %s`,
		schema.LibraryEntry.GameID, schema.LibraryEntry.Table, schema.LibraryEntry.UserID,
		schema.LibraryEntry.AddedAt, schema.LibraryEntry.GameID,
	)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, entryResource, "list")
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, dberr.Wrap(err, entryResource, "list")
	}
	return ids, nil
}

// # Reviews

func (repository *PostgresRepository) HasReview(context context.Context, userID, gameID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.SocialReview.Table, schema.SocialReview.UserID, schema.SocialReview.GameID,
	)

	var exists bool
	if err := repository.pool.QueryRow(context, query, userID, gameID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, reviewResource, "check")
	}
	return exists, nil
}

/*
AddReview inserts the review in a single statement that also re-checks library
membership, so an entry removed since the service's check is not reviewed.
*/
func (repository *PostgresRepository) AddReview(context context.Context, review *ReviewRecord) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		SELECT $1, $2, $3, $4
		WHERE EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)
		RETURNING %s, %s
	`,
		schema.SocialReview.Table,
		schema.SocialReview.UserID, schema.SocialReview.GameID, schema.SocialReview.Comment, schema.SocialReview.Rating,
		schema.LibraryEntry.Table, schema.LibraryEntry.UserID, schema.LibraryEntry.GameID,
		schema.SocialReview.ID, schema.SocialReview.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query, review.UserID, review.GameID, review.Comment, review.Rating).
		Scan(&review.ID, &review.CreatedAt)

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return errNotInLibrary
	case dberr.IsUniqueViolation(err, schema.SocialReview.UserGameKey):
		return errAlreadyReviewed
	}
	return dberr.Wrap(err, reviewResource, "create")
}
