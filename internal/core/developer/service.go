package developer

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

// List returns every developer that has not been deleted, oldest first.
func (service *Service) List(context context.Context) ([]*Developer, error) {
	return service.repo.ListActive(context)
}

// GetByID hides deleted developers behind NotFound.
func (service *Service) GetByID(context context.Context, id int64) (*Developer, error) {
	developer, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if developer.Status.IsDeleted() {
		return nil, apperr.NotFound(resource)
	}
	return developer, nil
}

func (service *Service) Create(context context.Context, name string) (*Developer, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	developer := &Developer{Name: name}
	if err := service.repo.Create(context, developer); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "developer_created", slog.Int64("developer_id", developer.ID))
	return developer, nil
}

// Update renames a developer. Deleted developers may still be renamed.
func (service *Service) Update(context context.Context, id int64, name string) (*Developer, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	developer := &Developer{ID: id, Name: name}
	if err := service.repo.Update(context, developer); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "developer_updated", slog.Int64("developer_id", id))
	return developer, nil
}

// Delete soft-deletes a developer. Deleting twice is not an error.
func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.repo.SoftDelete(context, id); err != nil {
		return err
	}

	service.logger.WarnContext(context, "developer_deleted", slog.Int64("developer_id", id))
	return nil
}

func validateName(name string) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, MaxNameLength)
	return validator.Err()
}
