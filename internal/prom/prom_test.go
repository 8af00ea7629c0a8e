package prom

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/mpeshwe/TaskManager/internal/api"
)

func TestMiddlewareCountsByRouteAndCode(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = api.JSONErrorHandler
	e.Use(Middleware())
	e.GET("/groups/:id", func(c echo.Context) error {
		return api.AsErrNotFound("group %s", c.Param("id"))
	})
	e.GET("/metrics", Handler())

	notFound := requestsTotal.WithLabelValues(http.MethodGet, "/groups/:id", "404")
	before := testutil.ToFloat64(notFound)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/groups/3", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, before+1, testutil.ToFloat64(notFound))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "taskmanager_http_requests_total")
}
