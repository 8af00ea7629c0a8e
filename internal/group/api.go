package group

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mpeshwe/TaskManager/internal/api"
	"github.com/mpeshwe/TaskManager/internal/model"
)

// RegisterAPIHandler registers the /groups routes, excluding the group-scoped task routes.
func RegisterAPIHandler(e *echo.Echo, s *Service, middleware ...echo.MiddlewareFunc) {
	groups := e.Group("/groups", middleware...)
	groups.GET("", s.getGroups)
	groups.POST("", s.postGroup)
	groups.GET("/:id", s.getGroup)
	groups.DELETE("/:id", s.deleteGroup)
	groups.GET("/:id/members", s.getMembers)
	groups.POST("/:id/members", s.postMember)
	groups.DELETE("/:id/members/:userId", s.deleteMember)
}

func (s *Service) getGroups(c echo.Context) error {
	groups, err := s.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, groups)
}

func (s *Service) getGroup(c echo.Context) error {
	id, err := api.IntParam(c, "id")
	if err != nil {
		return err
	}
	g, err := s.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, g)
}

func (s *Service) postGroup(c echo.Context) error {
	var params model.CreateGroup
	if err := api.BindBody(c, &params); err != nil {
		return err
	}
	g, err := s.Create(c.Request().Context(), params)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, g)
}

func (s *Service) deleteGroup(c echo.Context) error {
	id, err := api.IntParam(c, "id")
	if err != nil {
		return err
	}
	if err = s.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Service) getMembers(c echo.Context) error {
	id, err := api.IntParam(c, "id")
	if err != nil {
		return err
	}
	members, err := s.Members(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, members)
}

func (s *Service) postMember(c echo.Context) error {
	id, err := api.IntParam(c, "id")
	if err != nil {
		return err
	}
	var params model.AddMember
	if err = api.BindBody(c, &params); err != nil {
		return err
	}
	m, err := s.AddMember(c.Request().Context(), id, params)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, m)
}

func (s *Service) deleteMember(c echo.Context) error {
	id, err := api.IntParam(c, "id")
	if err != nil {
		return err
	}
	userID, err := api.IntParam(c, "userId")
	if err != nil {
		return err
	}
	if err = s.RemoveMember(c.Request().Context(), id, userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
