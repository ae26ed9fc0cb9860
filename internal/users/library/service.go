// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/gamelibrary/internal/core/game"
	"github.com/taibuivan/gamelibrary/internal/platform/apperr"
	"github.com/taibuivan/gamelibrary/internal/platform/lock"
	"github.com/taibuivan/gamelibrary/internal/platform/metrics"
	"github.com/taibuivan/gamelibrary/internal/platform/validate"
	"github.com/taibuivan/gamelibrary/internal/users/account"
)

var (
	errAlreadyInLibrary = apperr.Conflict("Game already in library")
	errNotInLibrary     = apperr.ValidationError("Game not in user's library")
	errAlreadyReviewed  = apperr.Conflict("User already reviewed this game")
)

// UserFinder resolves an account in any lifecycle status.
type UserFinder interface {
	FindByID(context context.Context, id int64) (*account.User, error)
}

// GameFinder resolves games in any lifecycle status.
type GameFinder interface {
	FindByID(context context.Context, id int64) (*game.Game, error)
	FindByIDs(context context.Context, ids []int64) ([]*game.Game, error)
}

// EventRecorder counts domain events.
type EventRecorder interface {
	RecordEvent(event string)
}

// # Service Layer

// Service enforces library membership and review rules. Mutations for one user
// run under that user's lock.
type Service struct {
	repository Repository
	users      UserFinder
	games      GameFinder
	locker     lock.Locker
	events     EventRecorder
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(
	repository Repository,
	users UserFinder,
	games GameFinder,
	locker lock.Locker,
	events EventRecorder,
	logger *slog.Logger,
) *Service {
	return &Service{
		repository: repository,
		users:      users,
		games:      games,
		locker:     locker,
		events:     events,
		logger:     logger,
	}
}

// # Library Management

/*
AddGame puts a game into a user's library.

Description: Deleted users and games are accepted. Adding a game twice is a
Conflict rather than a no-op.

Returns:
  - error: NotFound for an unknown user or game, Conflict for a duplicate
*/
func (service *Service) AddGame(context context.Context, userID, gameID int64) error {
	if _, err := service.users.FindByID(context, userID); err != nil {
		return err
	}
	if _, err := service.games.FindByID(context, gameID); err != nil {
		return err
	}

	release, err := service.lockUser(context, userID)
	if err != nil {
		return err
	}
	defer release()

	inLibrary, err := service.repository.HasGame(context, userID, gameID)
	if err != nil {
		return err
	}
	if inLibrary {
		return errAlreadyInLibrary
	}

	if err := service.repository.AddGame(context, userID, gameID); err != nil {
		return err
	}

	service.events.RecordEvent(metrics.EventLibraryAdd)
	service.logger.InfoContext(context, "library_game_added",
		slog.Int64("user_id", userID),
		slog.Int64("game_id", gameID),
	)
	return nil
}

// RemoveGame takes a game out of a user's library. Reviews of it are kept.
func (service *Service) RemoveGame(context context.Context, userID, gameID int64) error {
	if _, err := service.users.FindByID(context, userID); err != nil {
		return err
	}

	release, err := service.lockUser(context, userID)
	if err != nil {
		return err
	}
	defer release()

	removed, err := service.repository.RemoveGame(context, userID, gameID)
	if err != nil {
		return err
	}
	if !removed {
		return errNotInLibrary
	}

	service.events.RecordEvent(metrics.EventLibraryRemove)
	service.logger.InfoContext(context, "library_game_removed",
		slog.Int64("user_id", userID),
		slog.Int64("game_id", gameID),
	)
	return nil
}

// List returns the games in a user's library, oldest entry first, deleted games included.
func (service *Service) List(context context.Context, userID int64) ([]*game.Game, error) {
	if _, err := service.users.FindByID(context, userID); err != nil {
		return nil, err
	}

	gameIDs, err := service.repository.ListGameIDs(context, userID)
	if err != nil {
		return nil, err
	}
	if len(gameIDs) == 0 {
		return []*game.Game{}, nil
	}
	return service.games.FindByIDs(context, gameIDs)
}

// # Reviews

/*
AddReview records a user's rating of a game in their library.

Description: The rating must be within [1, 5] and the comment at most 255
characters. The game must be in the user's library and the user must not have
reviewed it before.

Parameters:
  - context: context.Context
  - userID: int64 (the reviewer)
  - gameID: int64
  - input: ReviewInput

Returns:
  - *Review: The stored review with its author and game
  - error: ValidationError, NotFound or Conflict
*/
func (service *Service) AddReview(context context.Context, userID, gameID int64, input ReviewInput) (*Review, error) {
	input.Comment = strings.TrimSpace(input.Comment)

	validator := &validate.Validator{}
	validator.Range(FieldRating, input.Rating, MinRating, MaxRating)
	validator.MaxLen(FieldComment, input.Comment, MaxCommentLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.users.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	reviewed, err := service.games.FindByID(context, gameID)
	if err != nil {
		return nil, err
	}

	release, err := service.lockUser(context, userID)
	if err != nil {
		return nil, err
	}
	defer release()

	inLibrary, err := service.repository.HasGame(context, userID, gameID)
	if err != nil {
		return nil, err
	}
	if !inLibrary {
		return nil, errNotInLibrary
	}

	alreadyReviewed, err := service.repository.HasReview(context, userID, gameID)
	if err != nil {
		return nil, err
	}
	if alreadyReviewed {
		return nil, errAlreadyReviewed
	}

	record := &ReviewRecord{
		UserID:  userID,
		GameID:  gameID,
		Comment: input.Comment,
		Rating:  input.Rating,
	}
	if err := service.repository.AddReview(context, record); err != nil {
		return nil, err
	}

	service.events.RecordEvent(metrics.EventReviewCreated)
	service.logger.InfoContext(context, "review_added",
		slog.Int64("review_id", record.ID),
		slog.Int64("user_id", userID),
		slog.Int64("game_id", gameID),
		slog.Int("rating", record.Rating),
	)

	return &Review{
		ID:        record.ID,
		Comment:   record.Comment,
		Rating:    record.Rating,
		CreatedAt: record.CreatedAt,
		User:      user.Summary(),
		Game:      reviewed,
	}, nil
}

// lockUser serializes library and review mutations of one user.
func (service *Service) lockUser(context context.Context, userID int64) (lock.Release, error) {
	release, err := service.locker.Acquire(context, fmt.Sprintf("user:%d", userID))
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("lock user %d: %w", userID, err))
	}
	return release, nil
}
