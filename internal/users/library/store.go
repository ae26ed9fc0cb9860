// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import "context"

// Repository persists library entries and reviews.
type Repository interface {
	HasGame(context context.Context, userID, gameID int64) (bool, error)
	// AddGame fails with Conflict when the pair already exists.
	AddGame(context context.Context, userID, gameID int64) error
	// RemoveGame reports whether an entry was removed.
	RemoveGame(context context.Context, userID, gameID int64) (bool, error)
	// ListGameIDs returns the library in the order games were added.
	ListGameIDs(context context.Context, userID int64) ([]int64, error)

	HasReview(context context.Context, userID, gameID int64) (bool, error)
	// AddReview fails with Conflict when the user already reviewed the game.
	AddReview(context context.Context, review *ReviewRecord) error
}
