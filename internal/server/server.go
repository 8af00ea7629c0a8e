// Package server assembles the echo server: middleware, routes and lifecycle.
package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/mpeshwe/TaskManager/internal/api"
	"github.com/mpeshwe/TaskManager/internal/config"
	"github.com/mpeshwe/TaskManager/internal/logger"
	"github.com/mpeshwe/TaskManager/internal/prom"
	"github.com/mpeshwe/TaskManager/internal/store"
)

// Server serves the REST API on top of a store.
type Server struct {
	config *config.Config
	db     store.Store
	echo   *echo.Echo
}

// New builds a server with every route registered. It does not start listening.
func New(cfg *config.Config, db store.Store) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger = logger.New()
	e.HTTPErrorHandler = api.JSONErrorHandler
	e.Server.ReadTimeout = time.Duration(cfg.HTTP.ReadTimeout)
	e.Server.WriteTimeout = time.Duration(cfg.HTTP.WriteTimeout)

	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(logger.RequestLogger())
	e.Use(prom.Middleware())

	s := &Server{config: cfg, db: db, echo: e}
	e.GET("/healthz", s.getHealth)
	e.GET("/metrics", prom.Handler())
	Route(e, db)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Run listens on the configured port until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := ":" + strconv.Itoa(s.config.Port)
	errs := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", addr)
		errs <- s.echo.Start(addr)
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrapf(err, "error serving on %s", addr)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(
		context.Background(), time.Duration(s.config.HTTP.ShutdownTimeout))
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "error shutting down server")
	}
	return nil
}

func (s *Server) getHealth(c echo.Context) error {
	if err := s.db.Ping(c.Request().Context()); err != nil {
		log.WithError(err).Warn("health check failed")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "store unavailable")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
