// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/gamelibrary/internal/platform/apperr"
)

// Wrap inspects a database error and converts it into an [apperr.AppError].
//
// # Mapping
//   - pgx.ErrNoRows: NotFound(resource)
//   - unique_violation (23505): Conflict
//   - foreign_key_violation (23503): ValidationError
//   - anything else: Internal, with the action recorded in the cause
func Wrap(err error, resource, action string) error {
	if err == nil {
		return nil
	}

	if apperr.IsAppError(err) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict(fmt.Sprintf("%s already exists", resource))
		case pgerrcode.ForeignKeyViolation:
			return apperr.ValidationError(fmt.Sprintf("%s references a missing record", resource))
		}
	}

	return apperr.Internal(fmt.Errorf("%s %s: %w", action, resource, err))
}

// IsUniqueViolation reports whether err is a Postgres unique_violation,
// optionally restricted to a single constraint name.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
