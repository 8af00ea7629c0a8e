package server

import (
	"github.com/labstack/echo/v4"

	"github.com/mpeshwe/TaskManager/internal/group"
	"github.com/mpeshwe/TaskManager/internal/store"
	"github.com/mpeshwe/TaskManager/internal/task"
	"github.com/mpeshwe/TaskManager/internal/user"
)

// Route builds the services over db and registers all available routes.
func Route(e *echo.Echo, db store.Store) {
	users := user.NewService(db)
	groups := group.NewService(db, users)
	tasks := task.NewService(db, groups)

	user.RegisterAPIHandler(e, users)
	group.RegisterAPIHandler(e, groups)
	task.RegisterAPIHandler(e, tasks)
}
