// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth exchanges account credentials for a short-lived bearer token.

# Scope

Tokens are HS256 JWTs valid for the configured TTL. There is no refresh flow;
clients log in again once a token expires.
*/
package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/gamelibrary/internal/platform/apperr"
	"github.com/taibuivan/gamelibrary/internal/platform/constants"
	"github.com/taibuivan/gamelibrary/internal/platform/metrics"
	"github.com/taibuivan/gamelibrary/internal/platform/sec"
	"github.com/taibuivan/gamelibrary/internal/platform/validate"
	"github.com/taibuivan/gamelibrary/internal/users/account"
)

var errInvalidCredentials = apperr.Unauthorized("Invalid credentials")

// # Definitions & Constructors

// UserFinder looks up active accounts by login identifier.
type UserFinder interface {
	FindActiveByEmail(context context.Context, email string) (*account.User, error)
	FindActiveByUsername(context context.Context, username string) (*account.User, error)
}

// TokenProvider issues signed access tokens. [*sec.TokenService] satisfies it.
type TokenProvider interface {
	GenerateAccessToken(userID int64, username, email string) (string, error)
	TTL() time.Duration
}

// EventRecorder counts domain events.
type EventRecorder interface {
	RecordEvent(event string)
}

// Service authenticates users.
type Service struct {
	users         UserFinder
	tokenProvider TokenProvider
	events        EventRecorder
	logger        *slog.Logger
}

// NewService constructs a new [Service].
func NewService(users UserFinder, tokenProvider TokenProvider, events EventRecorder, logger *slog.Logger) *Service {
	return &Service{
		users:         users,
		tokenProvider: tokenProvider,
		events:        events,
		logger:        logger,
	}
}

// # Authentication Flow

// LoginInput identifies the account by email or, when email is empty, by username.
type LoginInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Token is the response of a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

/*
Login validates user credentials and issues an access token.

Description: Looks up an active account by email (or username), compares the
password against the stored bcrypt hash and signs a token carrying the user's
id, username and email.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Token: The bearer token and its lifetime in seconds
  - error: ValidationError for missing fields, Unauthorized for bad credentials
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Token, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Username = strings.TrimSpace(input.Username)

	validator := &validate.Validator{}
	validator.Custom(account.FieldEmail, input.Email == "" && input.Username == "", "Email or username is required")
	validator.Required(account.FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.findUser(context, input)
	if apperr.IsNotFound(err) {
		return nil, service.reject(context, "unknown_user")
	}
	if err != nil {
		return nil, err
	}

	// Constant-time comparison happens inside bcrypt.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, service.reject(context, "password_mismatch")
	}

	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	service.events.RecordEvent(metrics.EventLoginSucceeded)
	service.logger.InfoContext(context, "login_succeeded", slog.Int64("user_id", user.ID))

	return &Token{
		AccessToken: accessToken,
		TokenType:   constants.TokenType,
		ExpiresIn:   int64(service.tokenProvider.TTL().Seconds()),
	}, nil
}

func (service *Service) findUser(context context.Context, input LoginInput) (*account.User, error) {
	if input.Email != "" {
		return service.users.FindActiveByEmail(context, input.Email)
	}
	return service.users.FindActiveByUsername(context, input.Username)
}

// reject records the failure and returns the generic error so callers cannot
// tell unknown accounts from wrong passwords.
func (service *Service) reject(context context.Context, reason string) error {
	service.events.RecordEvent(metrics.EventLoginFailed)
	service.logger.WarnContext(context, "login_failed", slog.String("reason", reason))
	return errInvalidCredentials
}
