// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package library manages the games a user owns and the reviews they write.

# Invariants

  - A game appears in a user's library at most once.
  - A review requires the game to be in the reviewer's library.
  - A user reviews a given game at most once. Reviews are immutable.
*/
package library

import (
	"time"

	"github.com/taibuivan/gamelibrary/internal/core/game"
	"github.com/taibuivan/gamelibrary/internal/users/account"
)

// # Domain Entities

// ReviewInput is the body of a review submission. Comment is optional.
type ReviewInput struct {
	Comment string `json:"comment"`
	Rating  int    `json:"rating"`
}

// ReviewRecord is a review as persisted.
type ReviewRecord struct {
	ID        int64
	UserID    int64
	GameID    int64
	Comment   string
	Rating    int
	CreatedAt time.Time
}

// Review is a stored review expanded with its author and game.
type Review struct {
	ID        int64           `json:"id"`
	Comment   string          `json:"comment"`
	Rating    int             `json:"rating"`
	CreatedAt time.Time       `json:"created_at"`
	User      account.Summary `json:"user"`
	Game      *game.Game      `json:"game"`
}

// # Validation Constants

const (
	FieldComment = "comment"
	FieldRating  = "rating"
)

const (
	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 255
)
