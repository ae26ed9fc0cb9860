package genre

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

const resource = "Genre"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectColumns = fmt.Sprintf("%s, %s, %s, %s, %s",
	schema.CoreGenre.ID, schema.CoreGenre.Name, schema.CoreGenre.Status,
	schema.CoreGenre.CreatedAt, schema.CoreGenre.UpdatedAt,
)

func scanGenre(row pgx.Row) (*Genre, error) {
	genre := &Genre{}
	err := row.Scan(&genre.ID, &genre.Name, &genre.Status, &genre.CreatedAt, &genre.UpdatedAt)
	return genre, err
}

func (repository *PostgresRepository) ListActive(context context.Context) ([]*Genre, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s`,
		selectColumns, schema.CoreGenre.Table, schema.CoreGenre.Status, schema.CoreGenre.ID,
	)

	rows, err := repository.db.Query(context, query, lifecycle.Active)
	if err != nil {
		return nil, dberr.Wrap(err, resource, "list")
	}
	defer rows.Close()

	genres := []*Genre{}
	for rows.Next() {
		genre, err := scanGenre(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resource, "scan")
		}
		genres = append(genres, genre)
	}
	return genres, dberr.Wrap(rows.Err(), resource, "list")
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Genre, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.CoreGenre.Table, schema.CoreGenre.ID,
	)

	genre, err := scanGenre(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resource, "find")
	}
	return genre, nil
}

func (repository *PostgresRepository) FindByIDs(context context.Context, ids []int64) ([]*Genre, error) {
	genres := []*Genre{}
	if len(ids) == 0 {
		return genres, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1) ORDER BY %s`,
		selectColumns, schema.CoreGenre.Table, schema.CoreGenre.ID, schema.CoreGenre.ID,
	)

	rows, err := repository.db.Query(context, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, resource, "find")
	}
	defer rows.Close()

	for rows.Next() {
		genre, err := scanGenre(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resource, "scan")
		}
		genres = append(genres, genre)
	}
	return genres, dberr.Wrap(rows.Err(), resource, "find")
}

func (repository *PostgresRepository) Create(context context.Context, genre *Genre) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		RETURNING %s, %s, %s
	`,
		schema.CoreGenre.Table, schema.CoreGenre.Name, schema.CoreGenre.Status,
		schema.CoreGenre.ID, schema.CoreGenre.CreatedAt, schema.CoreGenre.UpdatedAt,
	)

	genre.Status = lifecycle.Active
	err := repository.db.QueryRow(context, query, genre.Name, genre.Status).
		Scan(&genre.ID, &genre.CreatedAt, &genre.UpdatedAt)
	return dberr.Wrap(err, resource, "create")
}

func (repository *PostgresRepository) Update(context context.Context, genre *Genre) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s, %s
	`,
		schema.CoreGenre.Table, schema.CoreGenre.Name, schema.CoreGenre.UpdatedAt,
		schema.CoreGenre.ID,
		schema.CoreGenre.Status, schema.CoreGenre.CreatedAt, schema.CoreGenre.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, genre.ID, genre.Name).
		Scan(&genre.Status, &genre.CreatedAt, &genre.UpdatedAt)
	return dberr.Wrap(err, resource, "update")
}

func (repository *PostgresRepository) SoftDelete(context context.Context, id int64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.CoreGenre.Table, schema.CoreGenre.Status, schema.CoreGenre.UpdatedAt, schema.CoreGenre.ID,
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
