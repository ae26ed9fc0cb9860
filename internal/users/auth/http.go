// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/gamelibrary/internal/platform/request"
	"github.com/taibuivan/gamelibrary/internal/platform/respond"
)

// Handler implements the authentication endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /login : Authenticates and returns a JWT.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/login", handler.login)
	return router
}

/*
Login exchanges credentials for an access token.

POST /api/v1/auth/login

Request:
  - Body: LoginInput (email or username, password)

Response:
  - 200: Token: access_token, token_type, expires_in
  - 400: ErrValidation: Missing fields
  - 401: ErrUnauthorized: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input LoginInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.authService.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, token)
}
