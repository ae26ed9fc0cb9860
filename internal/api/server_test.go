// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/gamelibrary/internal/api"
	"github.com/taibuivan/gamelibrary/internal/platform/config"
	"github.com/taibuivan/gamelibrary/internal/platform/lock"
	"github.com/taibuivan/gamelibrary/internal/platform/memstore"
	"github.com/taibuivan/gamelibrary/internal/platform/metrics"
	"github.com/taibuivan/gamelibrary/internal/platform/middleware"
	"github.com/taibuivan/gamelibrary/internal/platform/sec"
)

// # Harness

type harness struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func newHarness(t *testing.T, health api.HealthDependencies) *harness {
	t.Helper()
	t.Cleanup(sec.UseMinimumCost())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		ServerPort:    "0",
		Environment:   "test",
		StorageDriver: config.DriverMemory,
		JWTSecret:     "scenario-secret",
		JWTTTL:        time.Hour,
	}

	tokens, err := sec.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	require.NoError(t, err)

	appMetrics := metrics.New()
	handlers := api.NewDomainHandlers(api.MemoryRepositories(memstore.New()), tokens, lock.NewLocal(), appMetrics, logger)
	handlers.Liveness, handlers.Readiness = api.NewHealthHandlers(health, logger)

	server := api.NewServer(cfg, logger, api.Infrastructure{
		Verifier:    tokens,
		RateLimiter: middleware.NewIPRateLimiter(1000, 1000),
		Metrics:     appMetrics,
	}, handlers)

	return &harness{t: t, handler: server.Handler()}
}

func (h *harness) do(method, path, body string) *httptest.ResponseRecorder {
	h.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	request.Header.Set("Content-Type", "application/json")
	if h.token != "" {
		request.Header.Set("Authorization", "Bearer "+h.token)
	}

	recorder := httptest.NewRecorder()
	h.handler.ServeHTTP(recorder, request)
	return recorder
}

// data decodes the success envelope of recorder into target.
func data(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope), recorder.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, target))
}

// login registers samus, logs in and keeps the token for later calls.
func (h *harness) login() {
	h.t.Helper()

	created := h.do(http.MethodPost, "/api/v1/users", `{"username":"samus","password":"metroid","email":"samus@zebes.example"}`)
	require.Equal(h.t, http.StatusCreated, created.Code, created.Body.String())

	response := h.do(http.MethodPost, "/api/v1/auth/login", `{"email":"samus@zebes.example","password":"metroid"}`)
	require.Equal(h.t, http.StatusOK, response.Code, response.Body.String())

	var token struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	data(h.t, response, &token)
	require.NotEmpty(h.t, token.AccessToken)
	assert.Equal(h.t, int64(3600), token.ExpiresIn)
	h.token = token.AccessToken
}

// seedCatalog creates Nintendo, Adventure and Zelda.
func (h *harness) seedCatalog() {
	h.t.Helper()
	require.Equal(h.t, http.StatusCreated, h.do(http.MethodPost, "/api/v1/developers", `{"name":"Nintendo"}`).Code)
	require.Equal(h.t, http.StatusCreated, h.do(http.MethodPost, "/api/v1/genres", `{"name":"Adventure"}`).Code)
	response := h.do(http.MethodPost, "/api/v1/games", `{"title":"Zelda","description":"Hyrule","developer_id":1,"genre_ids":[1]}`)
	require.Equal(h.t, http.StatusCreated, response.Code, response.Body.String())
}

// # Scenarios

func TestScenario_CreateGameProjectsReferences(t *testing.T) {
	h := newHarness(t, api.HealthDependencies{})
	h.login()

	developer := h.do(http.MethodPost, "/api/v1/developers", `{"name":"Nintendo"}`)
	require.Equal(t, http.StatusCreated, developer.Code)
	genre := h.do(http.MethodPost, "/api/v1/genres", `{"name":"Adventure"}`)
	require.Equal(t, http.StatusCreated, genre.Code)

	response := h.do(http.MethodPost, "/api/v1/games", `{"title":"Zelda","description":"Hyrule","developer_id":1,"genre_ids":[1]}`)
	require.Equal(t, http.StatusCreated, response.Code, response.Body.String())

	var created struct {
		ID        int64 `json:"id"`
		Developer struct {
			ID int64 `json:"id"`
		} `json:"developer"`
		Genres []struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"genres"`
	}
	data(t, response, &created)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, int64(1), created.Developer.ID)
	require.Len(t, created.Genres, 1)
	assert.Equal(t, "Adventure", created.Genres[0].Name)

	// The catalog is public.
	h.token = ""
	list := h.do(http.MethodGet, "/api/v1/games", "")
	assert.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), `"title":"Zelda"`)
}

func TestScenario_UnknownDeveloperPersistsNothing(t *testing.T) {
	h := newHarness(t, api.HealthDependencies{})
	h.login()

	response := h.do(http.MethodPost, "/api/v1/games", `{"title":"Zelda","description":"Hyrule","developer_id":7}`)
	assert.Equal(t, http.StatusBadRequest, response.Code)
	assert.Contains(t, response.Body.String(), `"error":"Developer not found"`)

	list := h.do(http.MethodGet, "/api/v1/games", "")
	assert.JSONEq(t, `{"data":[]}`, list.Body.String())
}

func TestScenario_LibraryAndReview(t *testing.T) {
	h := newHarness(t, api.HealthDependencies{})
	h.login()
	h.seedCatalog()

	added := h.do(http.MethodPost, "/api/v1/userlibrary/1/library/1", "")
	require.Equal(t, http.StatusOK, added.Code, added.Body.String())
	assert.JSONEq(t, `{"data":{"message":"Game added to library"}}`, added.Body.String())

	duplicate := h.do(http.MethodPost, "/api/v1/userlibrary/1/library/1", "")
	assert.Equal(t, http.StatusConflict, duplicate.Code)

	review := h.do(http.MethodPost, "/api/v1/userlibrary/1/review", `{"comment":"Great!","rating":5}`)
	require.Equal(t, http.StatusOK, review.Code, review.Body.String())

	var body struct {
		Message string `json:"message"`
		Review  struct {
			Rating int `json:"rating"`
			User   struct {
				Username string `json:"username"`
				Email    string `json:"email"`
			} `json:"user"`
			Game struct {
				Title string `json:"title"`
			} `json:"game"`
		} `json:"review"`
	}
	data(t, review, &body)
	assert.Equal(t, "Review added successfully", body.Message)
	assert.Equal(t, 5, body.Review.Rating)
	assert.Equal(t, "samus", body.Review.User.Username)
	assert.Equal(t, "samus@zebes.example", body.Review.User.Email)
	assert.Equal(t, "Zelda", body.Review.Game.Title)

	again := h.do(http.MethodPost, "/api/v1/userlibrary/1/review", `{"comment":"Still great","rating":4}`)
	assert.Equal(t, http.StatusConflict, again.Code)

	details := h.do(http.MethodGet, "/api/v1/games/details/1", "")
	require.Equal(t, http.StatusOK, details.Code)
	assert.Contains(t, details.Body.String(), `"average_rating":5`)

	library := h.do(http.MethodGet, "/api/v1/userlibrary/1/library", "")
	require.Equal(t, http.StatusOK, library.Code)
	assert.Contains(t, library.Body.String(), `"title":"Zelda"`)

	removed := h.do(http.MethodDelete, "/api/v1/userlibrary/1/library/1", "")
	assert.JSONEq(t, `{"data":{"message":"Game removed from library"}}`, removed.Body.String())
}

func TestScenario_ReviewRequiresLibraryEntry(t *testing.T) {
	h := newHarness(t, api.HealthDependencies{})
	h.login()
	h.seedCatalog()

	response := h.do(http.MethodPost, "/api/v1/userlibrary/1/review", `{"comment":"Great!","rating":5}`)
	assert.Equal(t, http.StatusBadRequest, response.Code)
	assert.Contains(t, response.Body.String(), `"error":"Game not in user's library"`)
}

func TestScenario_DeleteHidesAndIsIdempotent(t *testing.T) {
	h := newHarness(t, api.HealthDependencies{})
	h.login()
	h.seedCatalog()

	assert.Equal(t, http.StatusNoContent, h.do(http.MethodDelete, "/api/v1/developers/1", "").Code)
	assert.Equal(t, http.StatusNoContent, h.do(http.MethodDelete, "/api/v1/developers/1", "").Code)

	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/api/v1/developers/1", "").Code)
	assert.JSONEq(t, `{"data":[]}`, h.do(http.MethodGet, "/api/v1/developers", "").Body.String())

	// The game keeps pointing at its deleted developer.
	game := h.do(http.MethodGet, "/api/v1/games/1", "")
	assert.Equal(t, http.StatusOK, game.Code)
	assert.Contains(t, game.Body.String(), `"name":"Nintendo"`)
}

func TestScenario_Authentication(t *testing.T) {
	h := newHarness(t, api.HealthDependencies{})

	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"wrong_scheme", "Basic abc"},
		{"garbage_token", "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/api/v1/developers", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()
			h.handler.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.Contains(t, recorder.Body.String(), `"code":"UNAUTHORIZED"`)
		})
	}

	bad := h.do(http.MethodPost, "/api/v1/auth/login", `{"email":"nobody@example.com","password":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, bad.Code)
}

func TestScenario_DuplicateEmail(t *testing.T) {
	h := newHarness(t, api.HealthDependencies{})
	h.login()

	response := h.do(http.MethodPost, "/api/v1/users", `{"username":"other","password":"pw","email":"samus@zebes.example"}`)
	assert.Equal(t, http.StatusBadRequest, response.Code)
	assert.Contains(t, response.Body.String(), `"error":"Email already in use"`)
}

func TestScenario_BadInput(t *testing.T) {
	h := newHarness(t, api.HealthDependencies{})
	h.login()

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodGet, "/api/v1/games/abc", "").Code)
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/api/v1/genres", `{"name":`).Code)
}

// # Infrastructure

func TestInfrastructureEndpoints(t *testing.T) {
	h := newHarness(t, api.HealthDependencies{
		StoreName:  config.DriverMemory,
		CheckStore: func(context.Context) error { return nil },
	})

	assert.JSONEq(t, `{"data":{"status":"ok"}}`, h.do(http.MethodGet, "/health", "").Body.String())

	ready := h.do(http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, ready.Code)
	assert.Contains(t, ready.Body.String(), `"status":"ready"`)

	exposition := h.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, exposition.Code)
	assert.Contains(t, exposition.Body.String(), "gamelibrary_http_requests_total")
}

func TestReadiness_DependencyFailure(t *testing.T) {
	h := newHarness(t, api.HealthDependencies{
		StoreName:  config.DriverPostgres,
		CheckStore: func(context.Context) error { return nil },
		CheckCache: func(context.Context) error { return errors.New("connection refused") },
	})

	response := h.do(http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, response.Code)

	var body struct {
		Status string `json:"status"`
		Checks []struct {
			Name string `json:"name"`
			OK   bool   `json:"ok"`
		} `json:"checks"`
	}
	data(t, response, &body)
	assert.Equal(t, "degraded", body.Status)
	require.Len(t, body.Checks, 2)
	assert.True(t, body.Checks[0].OK)
	assert.Equal(t, "redis", body.Checks[1].Name)
	assert.False(t, body.Checks[1].OK)
}
