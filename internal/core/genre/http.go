package genre

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

type genreRequest struct {
	Name string `json:"name"`
}

// RegisterRoutes mounts the genre endpoints. Every route requires a bearer token.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(authRoute chi.Router) {
		authRoute.Use(middleware.RequireAuth)

		authRoute.Get("/", handler.listGenres)
		authRoute.Get("/{id}", handler.getGenre)
		authRoute.Post("/", handler.createGenre)
		authRoute.Put("/{id}", handler.updateGenre)
		authRoute.Delete("/{id}", handler.deleteGenre)
	})
}

func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	genres, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genres)
}

func (handler *Handler) getGenre(writer http.ResponseWriter, request *http.Request) {
	genreID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	genre, err := handler.service.GetByID(request.Context(), genreID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genre)
}

func (handler *Handler) createGenre(writer http.ResponseWriter, request *http.Request) {
	var input genreRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	genre, err := handler.service.Create(request.Context(), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, genre)
}

func (handler *Handler) updateGenre(writer http.ResponseWriter, request *http.Request) {
	genreID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input genreRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	genre, err := handler.service.Update(request.Context(), genreID, input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genre)
}

func (handler *Handler) deleteGenre(writer http.ResponseWriter, request *http.Request) {
	genreID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), genreID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
