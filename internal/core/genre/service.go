package genre

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/gamelibrary/internal/platform/apperr"
	"github.com/taibuivan/gamelibrary/internal/platform/validate"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List returns every genre that has not been deleted, oldest first.
func (service *Service) List(context context.Context) ([]*Genre, error) {
	return service.repo.ListActive(context)
}

// GetByID hides deleted genres behind NotFound.
func (service *Service) GetByID(context context.Context, id int64) (*Genre, error) {
	genre, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if genre.Status.IsDeleted() {
		return nil, apperr.NotFound(resource)
	}
	return genre, nil
}

func (service *Service) Create(context context.Context, name string) (*Genre, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	genre := &Genre{Name: name}
	if err := service.repo.Create(context, genre); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "genre_created", slog.Int64("genre_id", genre.ID))
	return genre, nil
}

// Update renames a genre. Deleted genres may still be renamed.
func (service *Service) Update(context context.Context, id int64, name string) (*Genre, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	genre := &Genre{ID: id, Name: name}
	if err := service.repo.Update(context, genre); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "genre_updated", slog.Int64("genre_id", id))
	return genre, nil
}

// Delete soft-deletes a genre. Deleting twice is not an error.
func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.repo.SoftDelete(context, id); err != nil {
		return err
	}

	service.logger.WarnContext(context, "genre_deleted", slog.Int64("genre_id", id))
	return nil
}

func validateName(name string) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, MaxNameLength)
	return validator.Err()
}
