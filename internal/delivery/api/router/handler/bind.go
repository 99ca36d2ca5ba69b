// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// bindAndValidate fills req from the query string and, when present, the JSON
// body, then runs the Echo validator. Query parameters are bound for every
// method because existing clients send them on POST and PUT as well.
func bindAndValidate(c echo.Context, req any) error {
	binder := &echo.DefaultBinder{}
	if err := binder.BindQueryParams(c, req); err != nil {
		return err
	}

	switch c.Request().Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		if err := binder.BindBody(c, req); err != nil {
			return err
		}
	}

	return c.Validate(req)
}
