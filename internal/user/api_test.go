package user

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
	"github.com/mpeshwe/TaskManager/internal/store/memstore"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = api.JSONErrorHandler
	RegisterAPIHandler(e, NewService(memstore.New()))
	return e
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestUserRoutes(t *testing.T) {
	e := newEcho()

	rec := do(e, http.MethodPost, "/users", `{"name": "alice", "email": "alice@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var u model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
	require.Equal(t, 1, u.ID)

	rec = do(e, http.MethodPut, "/users/1", `{"name": "alice liddell"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
	require.Equal(t, "alice liddell", u.Name)
	require.Equal(t, "alice@example.com", u.Email)

	rec = do(e, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[{"id": 1, "name": "alice liddell", "email": "alice@example.com"}]`, rec.Body.String())

	rec = do(e, http.MethodGet, "/users/1/groups", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())

	rec = do(e, http.MethodDelete, "/users/1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(e, http.MethodGet, "/users/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"message": "user 1: not found"}`, rec.Body.String())
}

func TestUserRoutesRejectBadInput(t *testing.T) {
	e := newEcho()

	rec := do(e, http.MethodGet, "/users/abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, "/users", `{"name": "alice"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "email must be set")

	rec = do(e, http.MethodPost, "/users", `{"name": `)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
