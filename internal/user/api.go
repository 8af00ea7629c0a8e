package user

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mpeshwe/TaskManager/internal/api"
	"github.com/mpeshwe/TaskManager/internal/model"
)

// RegisterAPIHandler registers the /users routes.
func RegisterAPIHandler(e *echo.Echo, s *Service, middleware ...echo.MiddlewareFunc) {
	users := e.Group("/users", middleware...)
	users.GET("", s.getUsers)
	users.POST("", s.postUser)
	users.GET("/:id", s.getUser)
	// PUT applies a partial update, like PATCH elsewhere.
	users.PUT("/:id", s.putUser)
	users.DELETE("/:id", s.deleteUser)
	users.GET("/:id/groups", s.getUserGroups)
}

func (s *Service) getUsers(c echo.Context) error {
	users, err := s.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (s *Service) getUser(c echo.Context) error {
	id, err := api.IntParam(c, "id")
	if err != nil {
		return err
	}
	u, err := s.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (s *Service) postUser(c echo.Context) error {
	var params model.CreateUser
	if err := api.BindBody(c, &params); err != nil {
		return err
	}
	u, err := s.Create(c.Request().Context(), params)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, u)
}

func (s *Service) putUser(c echo.Context) error {
	id, err := api.IntParam(c, "id")
	if err != nil {
		return err
	}
	var patch model.UserPatch
	if err = api.BindBody(c, &patch); err != nil {
		return err
	}
	u, err := s.Update(c.Request().Context(), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (s *Service) getUserGroups(c echo.Context) error {
	id, err := api.IntParam(c, "id")
	if err != nil {
		return err
	}
	groups, err := s.Groups(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, groups)
}

func (s *Service) deleteUser(c echo.Context) error {
	id, err := api.IntParam(c, "id")
	if err != nil {
		return err
	}
	if err = s.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
