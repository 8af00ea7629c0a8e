package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/mpeshwe/TaskManager/internal/config"
	"github.com/mpeshwe/TaskManager/internal/model"
	"github.com/mpeshwe/TaskManager/internal/store/memstore"
)

type client struct {
	t   *testing.T
	srv *Server
}

func (c client) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	c.srv.ServeHTTP(rec, req)
	return rec
}

func (c client) decode(rec *httptest.ResponseRecorder, code int, v interface{}) {
	c.t.Helper()
	require.Equal(c.t, code, rec.Code, rec.Body.String())
	if v != nil {
		require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), v))
	}
}

func newClient(t *testing.T) client {
	cfg := config.DefaultConfig()
	cfg.DB.Driver = config.DriverMemory
	return client{t: t, srv: New(cfg, memstore.New())}
}

func TestUserDeletionCascade(t *testing.T) {
	c := newClient(t)

	var u1, u2 model.User
	c.decode(c.do(http.MethodPost, "/users", `{"name": "u1", "email": "u1@example.com"}`),
		http.StatusCreated, &u1)
	c.decode(c.do(http.MethodPost, "/users", `{"name": "u2", "email": "u2@example.com"}`),
		http.StatusCreated, &u2)

	var shared, solo model.Group
	c.decode(c.do(http.MethodPost, "/groups", `{"name": "shared"}`), http.StatusCreated, &shared)
	c.decode(c.do(http.MethodPost, "/groups", `{"name": "solo"}`), http.StatusCreated, &solo)

	c.decode(c.do(http.MethodPost, "/groups/1/members", `{"userId": 1}`), http.StatusCreated, nil)
	c.decode(c.do(http.MethodPost, "/groups/1/members", `{"userId": 2}`), http.StatusCreated, nil)
	c.decode(c.do(http.MethodPost, "/groups/2/members", `{"userId": 1}`), http.StatusCreated, nil)

	var task model.Task
	c.decode(c.do(http.MethodPost, "/groups/2/tasks", `{"title": "solo work"}`), http.StatusCreated, &task)

	c.decode(c.do(http.MethodDelete, "/users/1", ""), http.StatusNoContent, nil)

	c.decode(c.do(http.MethodGet, "/groups/2", ""), http.StatusNotFound, nil)
	var members []model.Member
	c.decode(c.do(http.MethodGet, "/groups/1/members", ""), http.StatusOK, &members)
	require.Len(t, members, 1)
	require.Equal(t, u2, members[0].User)

	// The solo group's task keeps pointing at the deleted group.
	var views []model.TaskView
	c.decode(c.do(http.MethodGet, "/tasks", ""), http.StatusOK, &views)
	require.Len(t, views, 1)
	require.Equal(t, int64(solo.ID), views[0].GroupID.Int64)
	require.Nil(t, views[0].Group)
}

func TestErrorResponses(t *testing.T) {
	c := newClient(t)

	var body map[string]string
	c.decode(c.do(http.MethodGet, "/tasks/7", ""), http.StatusNotFound, &body)
	require.Equal(t, "task 7: not found", body["message"])

	c.decode(c.do(http.MethodGet, "/tasks/seven", ""), http.StatusBadRequest, &body)
	require.Contains(t, body["message"], "invalid id")

	c.decode(c.do(http.MethodGet, "/nowhere", ""), http.StatusNotFound, &body)
	require.Equal(t, "Not Found", body["message"])
}

func TestHealthAndMetrics(t *testing.T) {
	c := newClient(t)

	var health map[string]string
	c.decode(c.do(http.MethodGet, "/healthz", ""), http.StatusOK, &health)
	require.Equal(t, "ok", health["status"])

	c.do(http.MethodGet, "/users", "")
	rec := c.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(),
		`taskmanager_http_requests_total{code="200",method="GET",route="/users"}`)
	require.Contains(t, rec.Body.String(), "taskmanager_users_cascade_group_deletions_total")
}

func TestRunShutsDownOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	cfg := config.DefaultConfig()
	cfg.Port = port
	srv := New(cfg, memstore.New())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		r, err := http.Get("http://" + l.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp = r
		return true
	}, 5*time.Second, 20*time.Millisecond)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.True(t, err == nil || errors.Is(err, http.ErrServerClosed), "%v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
