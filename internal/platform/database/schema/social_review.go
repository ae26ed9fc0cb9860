package schema

// SocialReviewTable represents the 'social.review' table
type SocialReviewTable struct {
	Table     string
	ID        string
	UserID    string
	GameID    string
	Comment   string
	Rating    string
	CreatedAt string

	// UserGameKey is the unique constraint allowing one review per user and game.
	UserGameKey string
}

// SocialReview is the schema definition for social.review
var SocialReview = SocialReviewTable{
	Table:       "social.review",
	ID:          "id",
	UserID:      "userid",
	GameID:      "gameid",
	Comment:     "comment",
	Rating:      "rating",
	CreatedAt:   "createdat",
	UserGameKey: "review_user_game_key",
}

func (t SocialReviewTable) Columns() []string {
	return []string{t.ID, t.UserID, t.GameID, t.Comment, t.Rating, t.CreatedAt}
}
