package game

import (
	"time"

	"github.com/taibuivan/gamelibrary/internal/platform/lifecycle"
	"github.com/taibuivan/gamelibrary/pkg/slice"
)

// Ref is the {id, name} projection of a developer or genre embedded in a game.
type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Game is a catalog title made by one developer and tagged with any number of genres.
type Game struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Developer   Ref              `json:"developer"`
	Genres      []Ref            `json:"genres"`
	Status      lifecycle.Status `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// GenreIDs lists the ids of the game's genres.
func (game *Game) GenreIDs() []int64 {
	return slice.Map(game.Genres, func(genre Ref) int64 { return genre.ID })
}

// Input carries the writable fields of a game for create and update.
type Input struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DeveloperID int64   `json:"developer_id"`
	GenreIDs    []int64 `json:"genre_ids"`
}

// ReviewAuthor is the user summary shown next to a review.
type ReviewAuthor struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Review is a user's rating of a game as displayed on the game details page.
type Review struct {
	ID      int64        `json:"id"`
	Comment string       `json:"comment"`
	Rating  int          `json:"rating"`
	User    ReviewAuthor `json:"user"`
}

// Details is a game with its reviews expanded.
type Details struct {
	*Game
	AverageRating float64  `json:"average_rating"`
	Reviews       []Review `json:"reviews"`
}

// AverageRating is the mean rating of reviews, or 0 when there are none.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	total := slice.Reduce(reviews, 0, func(sum int, review Review) int { return sum + review.Rating })
	return float64(total) / float64(len(reviews))
}

// Global field names for validation
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDeveloperID = "developer_id"
	FieldGenreIDs    = "genre_ids"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
)
