package api

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// IntParam parses the named path parameter as a positive decimal id.
func IntParam(c echo.Context, name string) (int, error) {
	raw := c.Param(name)
	if raw == "" {
		return 0, AsValidationError("missing parameter: %s", name)
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, AsValidationError("invalid %s: %q", name, raw)
	}
	return id, nil
}

type validatable interface {
	Validate() error
}

// BindBody decodes the request body into i and runs its Validate method, if any. An empty
// body leaves i untouched.
func BindBody(c echo.Context, i interface{}) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, i); err != nil {
		return AsValidationError("malformed request body: %v", errMessage(err))
	}
	if v, ok := i.(validatable); ok {
		if err := v.Validate(); err != nil {
			return AsValidationError("%s", err)
		}
	}
	return nil
}

func errMessage(err error) interface{} {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Message
	}
	return err
}
