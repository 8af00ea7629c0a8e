package group

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/mpeshwe/TaskManager/internal/api"
	"github.com/mpeshwe/TaskManager/internal/model"
)

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGroupRoutes(t *testing.T) {
	f := newFixture()
	e := echo.New()
	e.HTTPErrorHandler = api.JSONErrorHandler
	RegisterAPIHandler(e, f.groups)
	u := f.user(t, "alice")

	rec := do(e, http.MethodPost, "/groups", `{"name": "ops", "description": "on call"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var g model.Group
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &g))
	require.Equal(t, "on call", g.Description.String)

	rec = do(e, http.MethodPost, "/groups/1/members", `{"userId": 1}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.JSONEq(t, `{"userId": 1, "groupId": 1}`, rec.Body.String())

	rec = do(e, http.MethodPost, "/groups/1/members", `{"userId": 1}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = do(e, http.MethodGet, "/groups/1/members", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var members []model.Member
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &members))
	require.Len(t, members, 1)
	require.Equal(t, u, members[0].User)

	rec = do(e, http.MethodDelete, "/groups/1/members/1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(e, http.MethodDelete, "/groups/1/members/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(e, http.MethodDelete, "/groups/1/members/x", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodGet, "/groups", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[{"id": 1, "name": "ops", "description": "on call"}]`, rec.Body.String())

	rec = do(e, http.MethodDelete, "/groups/1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(e, http.MethodGet, "/groups/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"message": "group 1: not found"}`, rec.Body.String())
}
