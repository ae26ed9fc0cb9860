// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/gamelibrary/internal/platform/apperr"
	"github.com/taibuivan/gamelibrary/internal/platform/database/schema"
	"github.com/taibuivan/gamelibrary/internal/platform/dberr"
	"github.com/taibuivan/gamelibrary/internal/platform/lifecycle"
)

const resource = "User"

// # Repository Implementation

// PostgresRepository implements [Repository] on the users.account table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a Postgres-backed account repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var selectColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s",
	schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
	schema.UserAccount.Password, schema.UserAccount.Status,
	schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
)

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Status,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}

// wrapWrite maps the email unique constraint onto the registration error.
func wrapWrite(err error, action string) error {
	if dberr.IsUniqueViolation(err, schema.UserAccount.EmailKey) {
		return errEmailInUse
	}
	return dberr.Wrap(err, resource, action)
}

func (repository *PostgresRepository) ListActive(context context.Context) ([]*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s`,
		selectColumns, schema.UserAccount.Table, schema.UserAccount.Status, schema.UserAccount.ID,
	)

	rows, err := repository.pool.Query(context, query, lifecycle.Active)
	if err != nil {
		return nil, dberr.Wrap(err, resource, "list")
	}
	defer rows.Close()

	users := []*User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resource, "scan")
		}
		users = append(users, user)
	}
	return users, dberr.Wrap(rows.Err(), resource, "list")
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.UserAccount.Table, schema.UserAccount.ID,
	)

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resource, "find")
	}
	return user, nil
}

func (repository *PostgresRepository) FindActiveByEmail(context context.Context, email string) (*User, error) {
	return repository.findActiveBy(context, schema.UserAccount.Email, email)
}

func (repository *PostgresRepository) FindActiveByUsername(context context.Context, username string) (*User, error) {
	return repository.findActiveBy(context, schema.UserAccount.Username, username)
}

func (repository *PostgresRepository) findActiveBy(context context.Context, column, value string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND %s = $2
		ORDER BY %s
		LIMIT 1`,
		selectColumns, schema.UserAccount.Table,
		column, schema.UserAccount.Status,
		schema.UserAccount.ID,
	)

	user, err := scanUser(repository.pool.QueryRow(context, query, value, lifecycle.Active))
	if err != nil {
		return nil, dberr.Wrap(err, resource, "find")
	}
	return user, nil
}

func (repository *PostgresRepository) EmailTaken(context context.Context, email string, excludeID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s <> $2)`,
		schema.UserAccount.Table, schema.UserAccount.Email, schema.UserAccount.ID,
	)

	var taken bool
	if err := repository.pool.QueryRow(context, query, email, excludeID).Scan(&taken); err != nil {
		return false, dberr.Wrap(err, resource, "check email")
	}
	return taken, nil
}

/*
Create inserts a new account.

Description: The unique constraint on email is the final guard against two
concurrent registrations; its violation surfaces as the same validation error
the service reports for a known duplicate.
*/
func (repository *PostgresRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s, %s
	`,
		schema.UserAccount.Table,
		schema.UserAccount.Username, schema.UserAccount.Email, schema.UserAccount.Password, schema.UserAccount.Status,
		schema.UserAccount.ID, schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	user.Status = lifecycle.Active
	err := repository.pool.QueryRow(context, query, user.Username, user.Email, user.PasswordHash, user.Status).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	return wrapWrite(err, "create")
}

func (repository *PostgresRepository) Update(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s, %s
	`,
		schema.UserAccount.Table,
		schema.UserAccount.Username, schema.UserAccount.Email, schema.UserAccount.Password, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
		schema.UserAccount.Status, schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, user.ID, user.Username, user.Email, user.PasswordHash).
		Scan(&user.Status, &user.CreatedAt, &user.UpdatedAt)
	return wrapWrite(err, "update")
}

func (repository *PostgresRepository) SoftDelete(context context.Context, id int64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.Status, schema.UserAccount.UpdatedAt, schema.UserAccount.ID,
	)

	cmd, err := repository.pool.Exec(context, query, id, lifecycle.Deleted)
	if err != nil {
		return dberr.Wrap(err, resource, "delete")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound(resource)
	}
	return nil
}
