package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"website_speed_test/internal/domain/models"
	"website_speed_test/internal/pkg/worker_pool"
	"website_speed_test/internal/service"
	"website_speed_test/internal/view"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unusedClient struct{}

func (unusedClient) Fetch(context.Context, string) (*models.SpeedTestReports, error) {
	return nil, nil
}

func TestInitRoutes(t *testing.T) {
	logger := log.New()
	pool := worker_pool.NewWorkerPool(context.Background(), 1, 1, logger)
	t.Cleanup(pool.Stop)

	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	router := &Router{
		httpRouter: chi.NewRouter(),
		log:        logger,
		tester:     service.NewSpeedTester(logger, unusedClient{}, pool, time.Minute),
		renderer:   renderer,
	}
	initRoutes(context.Background(), router)

	rec := httptest.NewRecorder()
	router.httpRouter.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	location := rec.Header().Get("Location")
	assert.True(t, strings.HasPrefix(location, "/views/"))
	assert.NotEmpty(t, rec.Header().Get("x-request-id"))

	rec = httptest.NewRecorder()
	router.httpRouter.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, location, nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.httpRouter.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.httpRouter.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
