package game

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

const resource = "Game"

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// selectGame joins the developer name onto every game row. Callers append
// their own WHERE and ORDER BY.
var selectGame = fmt.Sprintf(`
	SELECT g.%s, g.%s, g.%s, g.%s, g.%s, g.%s, d.%s, d.%s
	FROM %s g
	JOIN %s d ON d.%s = g.%s
`,
	schema.CoreGame.ID, schema.CoreGame.Title, schema.CoreGame.Description, schema.CoreGame.Status,
	schema.CoreGame.CreatedAt, schema.CoreGame.UpdatedAt,
	schema.CoreDeveloper.ID, schema.CoreDeveloper.Name,
	schema.CoreGame.Table, schema.CoreDeveloper.Table, schema.CoreDeveloper.ID, schema.CoreGame.DeveloperID,
)

func scanGame(row pgx.Row) (*Game, error) {
	game := &Game{Genres: []Ref{}}
	err := row.Scan(
		&game.ID, &game.Title, &game.Description, &game.Status, &game.CreatedAt, &game.UpdatedAt,
		&game.Developer.ID, &game.Developer.Name,
	)
	return game, err
}

func (repository *PostgresRepository) queryGames(context context.Context, query string, args ...any) ([]*Game, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, resource, "list")
	}
	defer rows.Close()

	games := []*Game{}
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resource, "scan")
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, resource, "list")
	}

	if err := repository.attachGenres(context, games); err != nil {
		return nil, err
	}
	return games, nil
}

// attachGenres loads the genre projections of all games with one query.
func (repository *PostgresRepository) attachGenres(context context.Context, games []*Game) error {
	if len(games) == 0 {
		return nil
	}

	byID := make(map[int64]*Game, len(games))
	ids := make([]int64, 0, len(games))
	for _, game := range games {
		byID[game.ID] = game
		ids = append(ids, game.ID)
	}

	query := fmt.Sprintf(`
		SELECT gg.%s, ge.%s, ge.%s
		FROM %s gg
		JOIN %s ge ON ge.%s = gg.%s
		WHERE gg.%s = ANY($1)
		ORDER BY ge.%s
	`,
		schema.CoreGameGenre.GameID, schema.CoreGenre.ID, schema.CoreGenre.Name,
		schema.CoreGameGenre.Table,
		schema.CoreGenre.Table, schema.CoreGenre.ID, schema.CoreGameGenre.GenreID,
		schema.CoreGameGenre.GameID,
		schema.CoreGenre.ID,
	)

	rows, err := repository.pool.Query(context, query, ids)
	if err != nil {
		return dberr.Wrap(err, "Genre", "list")
	}
	defer rows.Close()

	for rows.Next() {
		var gameID int64
		var genre Ref
		if err := rows.Scan(&gameID, &genre.ID, &genre.Name); err != nil {
			return dberr.Wrap(err, "Genre", "scan")
		}
		if game, ok := byID[gameID]; ok {
			game.Genres = append(game.Genres, genre)
		}
	}
	return dberr.Wrap(rows.Err(), "Genre", "list")
}

func (repository *PostgresRepository) ListActive(context context.Context) ([]*Game, error) {
	query := selectGame + fmt.Sprintf(` WHERE g.%s = $1 ORDER BY g.%s`, schema.CoreGame.Status, schema.CoreGame.ID)
	return repository.queryGames(context, query, lifecycle.Active)
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Game, error) {
	query := selectGame + fmt.Sprintf(` WHERE g.%s = $1`, schema.CoreGame.ID)

	games, err := repository.queryGames(context, query, id)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, apperr.NotFound(resource)
	}
	return games[0], nil
}

func (repository *PostgresRepository) FindByIDs(context context.Context, ids []int64) ([]*Game, error) {
	if len(ids) == 0 {
		return []*Game{}, nil
	}

	query := selectGame + fmt.Sprintf(` WHERE g.%s = ANY($1)`, schema.CoreGame.ID)
	games, err := repository.queryGames(context, query, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*Game, len(games))
	for _, game := range games {
		byID[game.ID] = game
	}

	ordered := make([]*Game, 0, len(games))
	for _, id := range ids {
		if game, ok := byID[id]; ok {
			ordered = append(ordered, game)
		}
	}
	return ordered, nil
}

func (repository *PostgresRepository) Create(context context.Context, game *Game) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s, %s
	`,
		schema.CoreGame.Table, schema.CoreGame.Title, schema.CoreGame.Description,
		schema.CoreGame.DeveloperID, schema.CoreGame.Status,
		schema.CoreGame.ID, schema.CoreGame.CreatedAt, schema.CoreGame.UpdatedAt,
	)

	game.Status = lifecycle.Active
	err = transaction.QueryRow(context, query, game.Title, game.Description, game.Developer.ID, game.Status).
		Scan(&game.ID, &game.CreatedAt, &game.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, resource, "create")
	}

	if err := replaceGenres(context, transaction, game.ID, game.GenreIDs()); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit create transaction: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, game *Game) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s, %s
	`,
		schema.CoreGame.Table,
		schema.CoreGame.Title, schema.CoreGame.Description, schema.CoreGame.DeveloperID, schema.CoreGame.UpdatedAt,
		schema.CoreGame.ID,
		schema.CoreGame.Status, schema.CoreGame.CreatedAt, schema.CoreGame.UpdatedAt,
	)

	err = transaction.QueryRow(context, query, game.ID, game.Title, game.Description, game.Developer.ID).
		Scan(&game.Status, &game.CreatedAt, &game.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, resource, "update")
	}

	if err := replaceGenres(context, transaction, game.ID, game.GenreIDs()); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit update transaction: %w", err)
	}
	return nil
}

// replaceGenres clears the game's genre links and batch inserts the new set.
func replaceGenres(context context.Context, transaction pgx.Tx, gameID int64, genreIDs []int64) error {
	deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.CoreGameGenre.Table, schema.CoreGameGenre.GameID)
	if _, err := transaction.Exec(context, deleteQuery, gameID); err != nil {
		return dberr.Wrap(err, "Genre", "unlink")
	}

	if len(genreIDs) == 0 {
		return nil
	}

	insertQuery := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)",
		schema.CoreGameGenre.Table, schema.CoreGameGenre.GameID, schema.CoreGameGenre.GenreID,
	)
	batch := &pgx.Batch{}
	for _, genreID := range genreIDs {
		batch.Queue(insertQuery, gameID, genreID)
	}

	if err := transaction.SendBatch(context, batch).Close(); err != nil {
		return dberr.Wrap(err, "Genre", "link")
	}
	return nil
}

func (repository *PostgresRepository) SoftDelete(context context.Context, id int64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.CoreGame.Table, schema.CoreGame.Status, schema.CoreGame.UpdatedAt, schema.CoreGame.ID,
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

func (repository *PostgresRepository) ListReviews(context context.Context, gameID int64) ([]Review, error) {
	query := fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, u.%s, u.%s
		FROM %s r
		JOIN %s u ON u.%s = r.%s
		WHERE r.%s = $1
		ORDER BY r.%s
	`,
		schema.SocialReview.ID, schema.SocialReview.Comment, schema.SocialReview.Rating,
		schema.UserAccount.ID, schema.UserAccount.Username,
		schema.SocialReview.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.SocialReview.UserID,
		schema.SocialReview.GameID,
		schema.SocialReview.ID,
	)

	rows, err := repository.pool.Query(context, query, gameID)
	if err != nil {
		return nil, dberr.Wrap(err, "Review", "list")
	}
	defer rows.Close()

	reviews := []Review{}
	for rows.Next() {
		var review Review
		if err := rows.Scan(&review.ID, &review.Comment, &review.Rating, &review.User.ID, &review.User.Username); err != nil {
			return nil, dberr.Wrap(err, "Review", "scan")
		}
		reviews = append(reviews, review)
	}
	return reviews, dberr.Wrap(rows.Err(), "Review", "list")
}
