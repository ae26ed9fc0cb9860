package game

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/gamelibrary/internal/platform/middleware"
	requestutil "github.com/taibuivan/gamelibrary/internal/platform/request"
	"github.com/taibuivan/gamelibrary/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the game endpoints.
//
// # Endpoints
//   - GET    /              : public catalog listing
//   - GET    /details/{id}  : public details with reviews
//   - GET    /{id}          : authenticated
//   - POST   /              : authenticated
//   - PUT    /{id}          : authenticated
//   - DELETE /{id}          : authenticated
func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listGames)
	router.Get("/details/{id}", handler.getGameDetails)

	router.Group(func(authRoute chi.Router) {
		authRoute.Use(middleware.RequireAuth)

		authRoute.Get("/{id}", handler.getGame)
		authRoute.Post("/", handler.createGame)
		authRoute.Put("/{id}", handler.updateGame)
		authRoute.Delete("/{id}", handler.deleteGame)
	})
}

func (handler *Handler) listGames(writer http.ResponseWriter, request *http.Request) {
	games, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, games)
}

func (handler *Handler) getGame(writer http.ResponseWriter, request *http.Request) {
	gameID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	game, err := handler.service.GetByID(request.Context(), gameID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, game)
}

func (handler *Handler) getGameDetails(writer http.ResponseWriter, request *http.Request) {
	gameID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	details, err := handler.service.GetDetails(request.Context(), gameID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, details)
}

func (handler *Handler) createGame(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	game, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, game)
}

func (handler *Handler) updateGame(writer http.ResponseWriter, request *http.Request) {
	gameID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	game, err := handler.service.Update(request.Context(), gameID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, game)
}

func (handler *Handler) deleteGame(writer http.ResponseWriter, request *http.Request) {
	gameID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), gameID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
