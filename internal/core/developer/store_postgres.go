package developer

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

const resource = "Developer"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectColumns = fmt.Sprintf("%s, %s, %s, %s, %s",
	schema.CoreDeveloper.ID, schema.CoreDeveloper.Name, schema.CoreDeveloper.Status,
	schema.CoreDeveloper.CreatedAt, schema.CoreDeveloper.UpdatedAt,
)

func scanDeveloper(row pgx.Row) (*Developer, error) {
	developer := &Developer{}
	err := row.Scan(&developer.ID, &developer.Name, &developer.Status, &developer.CreatedAt, &developer.UpdatedAt)
	return developer, err
}

func (repository *PostgresRepository) ListActive(context context.Context) ([]*Developer, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s`,
		selectColumns, schema.CoreDeveloper.Table, schema.CoreDeveloper.Status, schema.CoreDeveloper.ID,
	)

	rows, err := repository.db.Query(context, query, lifecycle.Active)
	if err != nil {
		return nil, dberr.Wrap(err, resource, "list")
	}
	defer rows.Close()

	developers := []*Developer{}
	for rows.Next() {
		developer, err := scanDeveloper(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resource, "scan")
		}
		developers = append(developers, developer)
	}
	return developers, dberr.Wrap(rows.Err(), resource, "list")
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Developer, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.CoreDeveloper.Table, schema.CoreDeveloper.ID,
	)

	developer, err := scanDeveloper(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resource, "find")
	}
	return developer, nil
}

func (repository *PostgresRepository) Create(context context.Context, developer *Developer) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		RETURNING %s, %s, %s
	`,
		schema.CoreDeveloper.Table, schema.CoreDeveloper.Name, schema.CoreDeveloper.Status,
		schema.CoreDeveloper.ID, schema.CoreDeveloper.CreatedAt, schema.CoreDeveloper.UpdatedAt,
	)

	developer.Status = lifecycle.Active
	err := repository.db.QueryRow(context, query, developer.Name, developer.Status).
		Scan(&developer.ID, &developer.CreatedAt, &developer.UpdatedAt)
	return dberr.Wrap(err, resource, "create")
}

func (repository *PostgresRepository) Update(context context.Context, developer *Developer) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s, %s
	`,
		schema.CoreDeveloper.Table, schema.CoreDeveloper.Name, schema.CoreDeveloper.UpdatedAt,
		schema.CoreDeveloper.ID,
		schema.CoreDeveloper.Status, schema.CoreDeveloper.CreatedAt, schema.CoreDeveloper.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, developer.ID, developer.Name).
		Scan(&developer.Status, &developer.CreatedAt, &developer.UpdatedAt)
	return dberr.Wrap(err, resource, "update")
}

func (repository *PostgresRepository) SoftDelete(context context.Context, id int64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.CoreDeveloper.Table, schema.CoreDeveloper.Status, schema.CoreDeveloper.UpdatedAt, schema.CoreDeveloper.ID,
	)

	cmd, err := repository.db.Exec(context, query, id, lifecycle.Deleted)
	if err != nil {
		return dberr.Wrap(err, resource, "delete")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound(resource)
	}
	return nil
}
