package game

import "context"

// Repository persists games with their genre links. Reads return games in any
// status with developer and genre names joined in.
type Repository interface {
	ListActive(context context.Context) ([]*Game, error)
	FindByID(context context.Context, id int64) (*Game, error)
	// FindByIDs returns the games that exist among ids, preserving the order of ids.
	FindByIDs(context context.Context, ids []int64) ([]*Game, error)
	// Create inserts the game and its genre links in one transaction.
	Create(context context.Context, game *Game) error
	// Update replaces the game's fields and its whole genre set in one transaction.
	Update(context context.Context, game *Game) error
	SoftDelete(context context.Context, id int64) error
	ListReviews(context context.Context, gameID int64) ([]Review, error)
}
