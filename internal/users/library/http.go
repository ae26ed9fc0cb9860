// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/gamelibrary/internal/platform/middleware"
	requestutil "github.com/taibuivan/gamelibrary/internal/platform/request"
	"github.com/taibuivan/gamelibrary/internal/platform/respond"
)

// Handler implements the library and review endpoints.
type Handler struct {
	libraryService *Service
}

// NewHandler constructs a new library [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{libraryService: service}
}

// Routes returns a [chi.Router] with the library endpoints. All of them require a bearer token.
//
// # Endpoints
//   - POST   /{userId}/library/{gameId}
//   - DELETE /{userId}/library/{gameId}
//   - GET    /{userId}/library
//   - POST   /{gameId}/review : the reviewer is the token's user
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/{userId}/library/{gameId}", handler.addGame)
	router.Delete("/{userId}/library/{gameId}", handler.removeGame)
	router.Get("/{userId}/library", handler.listLibrary)
	router.Post("/{gameId}/review", handler.addReview)

	return router
}

type reviewResponse struct {
	Message string  `json:"message"`
	Review  *Review `json:"review"`
}

func (handler *Handler) addGame(writer http.ResponseWriter, request *http.Request) {
	userID, gameID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.libraryService.AddGame(request.Context(), userID, gameID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Done(writer, "Game added to library")
}

func (handler *Handler) removeGame(writer http.ResponseWriter, request *http.Request) {
	userID, gameID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.libraryService.RemoveGame(request.Context(), userID, gameID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Done(writer, "Game removed from library")
}

func (handler *Handler) listLibrary(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.IntID(request, "userId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	games, err := handler.libraryService.List(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, games)
}

/*
POST /api/v1/userlibrary/{gameId}/review.

Request:
  - Body: ReviewInput (comment, rating)

Response:
  - 200: {message, review}: The review with its author and game
  - 400: ErrValidation: Bad rating or comment, or the game is not in the library
  - 404: ErrNotFound: Unknown user or game
  - 409: ErrConflict: The user already reviewed the game
*/
func (handler *Handler) addReview(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	gameID, err := requestutil.IntID(request, "gameId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ReviewInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.libraryService.AddReview(request.Context(), userID, gameID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, reviewResponse{Message: "Review added successfully", Review: review})
}

func pathIDs(request *http.Request) (userID, gameID int64, err error) {
	if userID, err = requestutil.IntID(request, "userId"); err != nil {
		return 0, 0, err
	}
	if gameID, err = requestutil.IntID(request, "gameId"); err != nil {
		return 0, 0, err
	}
	return userID, gameID, nil
}
