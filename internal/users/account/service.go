// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/taibuivan/gamelibrary/internal/platform/apperr"
	"github.com/taibuivan/gamelibrary/internal/platform/metrics"
	"github.com/taibuivan/gamelibrary/internal/platform/sec"
	"github.com/taibuivan/gamelibrary/internal/platform/validate"
)

var errEmailInUse = apperr.ValidationError("Email already in use")

// EventRecorder counts domain events. [*metrics.Metrics] satisfies it.
type EventRecorder interface {
	RecordEvent(event string)
}

// # Service Layer

// Service orchestrates account registration and maintenance.
type Service struct {
	repository Repository
	events     EventRecorder
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository Repository, events EventRecorder, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		events:     events,
		logger:     logger,
	}
}

// List returns the active accounts.
func (service *Service) List(context context.Context) ([]*User, error) {
	return service.repository.ListActive(context)
}

// GetByID returns an active account, or NotFound when it is absent or deleted.
func (service *Service) GetByID(context context.Context, id int64) (*User, error) {
	user, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if user.Status.IsDeleted() {
		return nil, apperr.NotFound(resource)
	}
	return user, nil
}

// # Registration

/*
Create registers a new account.

Description: Rejects an email already owned by any account, deleted ones
included. The password is stored as a bcrypt hash.

Parameters:
  - context: context.Context
  - input: Input

Returns:
  - *User: The stored account
  - error: ValidationError for bad input or a taken email
*/
func (service *Service) Create(context context.Context, input Input) (*User, error) {
	input = normalize(input)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	taken, err := service.repository.EmailTaken(context, input.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errEmailInUse
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := service.repository.Create(context, user); err != nil {
		return nil, err
	}

	service.events.RecordEvent(metrics.EventUserRegistered)
	service.logger.InfoContext(context, "user_registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)
	return user, nil
}

/*
Update replaces the username, password and email of an account.

Description: The account may be deleted. The new email must not belong to any
other account.
*/
func (service *Service) Update(context context.Context, id int64, input Input) (*User, error) {
	if _, err := service.repository.FindByID(context, id); err != nil {
		return nil, err
	}

	input = normalize(input)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	taken, err := service.repository.EmailTaken(context, input.Email, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errEmailInUse
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           id,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := service.repository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_updated", slog.Int64("user_id", id))
	return user, nil
}

// Delete soft-deletes an account. Its library and reviews are kept.
func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.repository.SoftDelete(context, id); err != nil {
		return err
	}

	service.logger.WarnContext(context, "user_deleted", slog.Int64("user_id", id))
	return nil
}

// # Helpers

// normalize trims identity fields and lower-cases the email. Passwords are kept verbatim.
func normalize(input Input) Input {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	return input
}

func validateInput(input Input) error {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, MinUsernameLength).
		MaxLen(FieldUsername, input.Username, MaxUsernameLength)
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, MaxEmailLength)
	validator.Required(FieldPassword, input.Password).
		Custom(FieldPassword, len(input.Password) > sec.MaxPasswordBytes, "Maximum 72 bytes")
	return validator.Err()
}

func hashPassword(password string) (string, error) {
	hash, err := sec.HashPassword(password)
	if errors.Is(err, sec.ErrPasswordTooLong) {
		return "", validate.RequiredError(FieldPassword, "Maximum 72 bytes")
	}
	if err != nil {
		return "", apperr.Internal(err)
	}
	return hash, nil
}
