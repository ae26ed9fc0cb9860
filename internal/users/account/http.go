// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/gamelibrary/internal/platform/middleware"
	requestutil "github.com/taibuivan/gamelibrary/internal/platform/request"
	"github.com/taibuivan/gamelibrary/internal/platform/respond"
)

// Handler implements the HTTP layer for user accounts.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account endpoints.
//
// # Endpoints
//   - POST   /     : public registration
//   - GET    /     : authenticated
//   - GET    /{id} : authenticated
//   - PUT    /{id} : authenticated
//   - DELETE /{id} : authenticated
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Registration
	router.Post("/", handler.createUser)

	router.Group(func(authRoute chi.Router) {
		authRoute.Use(middleware.RequireAuth)

		authRoute.Get("/", handler.listUsers)
		authRoute.Get("/{id}", handler.getUser)
		authRoute.Put("/{id}", handler.updateUser)
		authRoute.Delete("/{id}", handler.deleteUser)
	})

	return router
}

func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	users, err := handler.accountService.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, users)
}

func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetByID(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

/*
POST /api/v1/users.

Request:
  - Body: Input (username, password, email)

Response:
  - 201: User: The registered account
  - 400: ErrValidation: Invalid fields or email already in use
*/
func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, user)
}

func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Update(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.Delete(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
