package game

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/taibuivan/gamelibrary/internal/core/developer"
	"github.com/taibuivan/gamelibrary/internal/core/genre"
	"github.com/taibuivan/gamelibrary/internal/platform/apperr"
	"github.com/taibuivan/gamelibrary/internal/platform/validate"
	"github.com/taibuivan/gamelibrary/pkg/slice"
)

// DeveloperFinder resolves a developer in any lifecycle status.
type DeveloperFinder interface {
	FindByID(context context.Context, id int64) (*developer.Developer, error)
}

// GenreFinder resolves the genres that exist among a set of ids, in any lifecycle status.
type GenreFinder interface {
	FindByIDs(context context.Context, ids []int64) ([]*genre.Genre, error)
}

var (
	errDeveloperNotFound = apperr.ValidationError("Developer not found")
	errGenresNotFound    = apperr.ValidationError("One or more genres not found")
)

type Service struct {
	repo       Repository
	developers DeveloperFinder
	genres     GenreFinder
	logger     *slog.Logger
}

func NewService(repo Repository, developers DeveloperFinder, genres GenreFinder, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		developers: developers,
		genres:     genres,
		logger:     logger,
	}
}

// List returns active games. Their developer and genres are shown even when deleted.
func (service *Service) List(context context.Context) ([]*Game, error) {
	return service.repo.ListActive(context)
}

func (service *Service) GetByID(context context.Context, id int64) (*Game, error) {
	game, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if game.Status.IsDeleted() {
		return nil, apperr.NotFound(resource)
	}
	return game, nil
}

// GetDetails returns an active game with its reviews and average rating.
func (service *Service) GetDetails(context context.Context, id int64) (*Details, error) {
	game, err := service.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	reviews, err := service.repo.ListReviews(context, id)
	if err != nil {
		return nil, err
	}

	return &Details{
		Game:          game,
		AverageRating: AverageRating(reviews),
		Reviews:       reviews,
	}, nil
}

/*
Create validates the input, resolves its references and persists the game.

Description: The developer and every genre must exist, though they may be
soft-deleted. Duplicate genre ids collapse into one link. The game row and its
genre links are written together or not at all.

Returns:
  - *Game: The stored game with developer and genre names
  - error: ValidationError for bad input or unresolved references
*/
func (service *Service) Create(context context.Context, input Input) (*Game, error) {
	game, err := service.build(context, input)
	if err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, game); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "game_created",
		slog.Int64("game_id", game.ID),
		slog.Int64("developer_id", game.Developer.ID),
		slog.Int("genre_count", len(game.Genres)),
	)
	return game, nil
}

// Update replaces title, description, developer and the whole genre set.
func (service *Service) Update(context context.Context, id int64, input Input) (*Game, error) {
	if _, err := service.repo.FindByID(context, id); err != nil {
		return nil, err
	}

	game, err := service.build(context, input)
	if err != nil {
		return nil, err
	}
	game.ID = id

	if err := service.repo.Update(context, game); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "game_updated", slog.Int64("game_id", id))
	return game, nil
}

// Delete soft-deletes a game. Reviews and library entries that point at it are kept.
func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.repo.SoftDelete(context, id); err != nil {
		return err
	}

	service.logger.WarnContext(context, "game_deleted", slog.Int64("game_id", id))
	return nil
}

// build validates input and resolves it into an unsaved game.
func (service *Service) build(context context.Context, input Input) (*Game, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, MaxTitleLength)
	validator.Required(FieldDescription, input.Description).MaxLen(FieldDescription, input.Description, MaxDescriptionLength)
	validator.Positive(FieldDeveloperID, input.DeveloperID)
	for _, genreID := range input.GenreIDs {
		validator.Positive(FieldGenreIDs, genreID)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	developerRef, err := service.resolveDeveloper(context, input.DeveloperID)
	if err != nil {
		return nil, err
	}

	genreRefs, err := service.resolveGenres(context, input.GenreIDs)
	if err != nil {
		return nil, err
	}

	return &Game{
		Title:       input.Title,
		Description: input.Description,
		Developer:   developerRef,
		Genres:      genreRefs,
	}, nil
}

func (service *Service) resolveDeveloper(context context.Context, id int64) (Ref, error) {
	found, err := service.developers.FindByID(context, id)
	if apperr.IsNotFound(err) {
		return Ref{}, errDeveloperNotFound
	}
	if err != nil {
		return Ref{}, err
	}
	return Ref{ID: found.ID, Name: found.Name}, nil
}

func (service *Service) resolveGenres(context context.Context, ids []int64) ([]Ref, error) {
	unique := slice.Unique(ids)
	if len(unique) == 0 {
		return []Ref{}, nil
	}

	found, err := service.genres.FindByIDs(context, unique)
	if err != nil {
		return nil, err
	}
	if len(found) != len(unique) {
		return nil, errGenresNotFound
	}

	refs := slice.Map(found, func(item *genre.Genre) Ref { return Ref{ID: item.ID, Name: item.Name} })
	slices.SortFunc(refs, func(a, b Ref) int { return cmp.Compare(a.ID, b.ID) })
	return refs, nil
}
