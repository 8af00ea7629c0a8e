package task

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gopkg.in/guregu/null.v3"

	"github.com/mpeshwe/TaskManager/internal/api"
	"github.com/mpeshwe/TaskManager/internal/model"
)

// RegisterAPIHandler registers the /tasks routes and the task routes scoped under a group.
// Scoped routes that address a single task act on it by id; the group id is only validated.
func RegisterAPIHandler(e *echo.Echo, s *Service, middleware ...echo.MiddlewareFunc) {
	tasks := e.Group("/tasks", middleware...)
	tasks.GET("", s.getTasks)
	tasks.POST("", s.postTask)
	tasks.GET("/:id", s.getTask)
	tasks.PATCH("/:id", s.patchTask)
	// PUT is kept for clients of the older surface and only marks the task complete.
	tasks.PUT("/:id", s.completeTask)
	tasks.DELETE("/:id", s.deleteTask)

	scoped := e.Group("/groups/:groupId/tasks", middleware...)
	scoped.GET("", s.getGroupTasks)
	scoped.POST("", s.postTask)
	scoped.GET("/:id", withGroup(s.getTask))
	scoped.PATCH("/:id", withGroup(s.patchTask))
	scoped.PATCH("/:id/complete", withGroup(s.completeTask))
	scoped.DELETE("/:id", withGroup(s.deleteTask))
}

// withGroup rejects a malformed group id before running next.
func withGroup(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := api.IntParam(c, "groupId"); err != nil {
			return err
		}
		return next(c)
	}
}

// groupParam returns the group id of a scoped route, or an invalid null.Int on /tasks.
func groupParam(c echo.Context) (null.Int, error) {
	if c.Param("groupId") == "" {
		return null.Int{}, nil
	}
	id, err := api.IntParam(c, "groupId")
	if err != nil {
		return null.Int{}, err
	}
	return null.IntFrom(int64(id)), nil
}

func (s *Service) getTasks(c echo.Context) error {
	tasks, err := s.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

func (s *Service) getGroupTasks(c echo.Context) error {
	groupID, err := api.IntParam(c, "groupId")
	if err != nil {
		return err
	}
	tasks, err := s.ListByGroup(c.Request().Context(), groupID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

func (s *Service) getTask(c echo.Context) error {
	id, err := api.IntParam(c, "id")
	if err != nil {
		return err
	}
	t, err := s.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Service) postTask(c echo.Context) error {
	groupID, err := groupParam(c)
	if err != nil {
		return err
	}
	var params model.CreateTask
	if err = api.BindBody(c, &params); err != nil {
		return err
	}
	t, err := s.Create(c.Request().Context(), groupID, params)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, t)
}

func (s *Service) patchTask(c echo.Context) error {
	id, err := api.IntParam(c, "id")
	if err != nil {
		return err
	}
	var patch model.TaskPatch
	if err = api.BindBody(c, &patch); err != nil {
		return err
	}
	t, err := s.Update(c.Request().Context(), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Service) completeTask(c echo.Context) error {
	id, err := api.IntParam(c, "id")
	if err != nil {
		return err
	}
	t, err := s.SetComplete(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Service) deleteTask(c echo.Context) error {
	id, err := api.IntParam(c, "id")
	if err != nil {
		return err
	}
	if err = s.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
