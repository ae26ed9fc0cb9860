package developer

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

type developerRequest struct {
	Name string `json:"name"`
}

// RegisterRoutes mounts the developer endpoints. Every route requires a bearer token.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(authRoute chi.Router) {
		authRoute.Use(middleware.RequireAuth)

		authRoute.Get("/", handler.listDevelopers)
		authRoute.Get("/{id}", handler.getDeveloper)
		authRoute.Post("/", handler.createDeveloper)
		authRoute.Put("/{id}", handler.updateDeveloper)
		authRoute.Delete("/{id}", handler.deleteDeveloper)
	})
}

func (handler *Handler) listDevelopers(writer http.ResponseWriter, request *http.Request) {
	developers, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, developers)
}

func (handler *Handler) getDeveloper(writer http.ResponseWriter, request *http.Request) {
	developerID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	developer, err := handler.service.GetByID(request.Context(), developerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, developer)
}

func (handler *Handler) createDeveloper(writer http.ResponseWriter, request *http.Request) {
	var input developerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	developer, err := handler.service.Create(request.Context(), input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, developer)
}

func (handler *Handler) updateDeveloper(writer http.ResponseWriter, request *http.Request) {
	developerID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input developerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	developer, err := handler.service.Update(request.Context(), developerID, input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, developer)
}

func (handler *Handler) deleteDeveloper(writer http.ResponseWriter, request *http.Request) {
	developerID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), developerID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
