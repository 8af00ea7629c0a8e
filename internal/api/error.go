// Package api holds the HTTP plumbing shared by every service: the error taxonomy, its
// mapping onto status codes, and request binding helpers.
package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

var (
	// ErrInvalid is the inner error for errors that convert to a 400.
	ErrInvalid = errors.New("bad request")
	// ErrNotFound is the inner error for errors that convert to a 404.
	ErrNotFound = errors.New("not found")
	// ErrConflict is the inner error for errors that convert to a 409.
	ErrConflict = errors.New("conflict")
)

// AsValidationError returns an error that wraps ErrInvalid, so that errors.Is can identify it.
func AsValidationError(msg string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalid, msg, args...)
}

// AsErrNotFound returns an error that wraps ErrNotFound, so that errors.Is can identify it.
func AsErrNotFound(msg string, args ...interface{}) error {
	return errors.Wrapf(ErrNotFound, msg, args...)
}

// AsErrConflict returns an error that wraps ErrConflict, so that errors.Is can identify it.
func AsErrConflict(msg string, args ...interface{}) error {
	return errors.Wrapf(ErrConflict, msg, args...)
}

// StatusCode returns the HTTP status an error converts to.
func StatusCode(err error) int {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// JSONErrorHandler sends a JSON response with a single "message" key containing the error message.
func JSONErrorHandler(err error, c echo.Context) {
	// Middleware may already have handled this error.
	if c.Response().Committed {
		return
	}

	code := StatusCode(err)
	var msg interface{} = err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg = he.Message
	}
	if code >= 500 {
		c.Logger().Error(err)
	}

	// For the HEAD method, the server MUST NOT return a message-body in the response.
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, map[string]interface{}{"message": fmt.Sprint(msg)})
	}
	if err != nil {
		c.Logger().Error(err)
	}
}
