// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"codeberg.org/oliverandrich/jobportal/internal/htmx"
	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Render renders a templ component with the given status code.
func Render(c echo.Context, statusCode int, component templ.Component) error {
	buf := templ.GetBuffer()
	defer templ.ReleaseBuffer(buf)

	if err := component.Render(c.Request().Context(), buf); err != nil {
		return err
	}

	return c.HTML(statusCode, buf.String())
}

// redirect sends the browser to url after a successful form submission.
func redirect(c echo.Context, url string) error {
	htmx.Redirect(c.Response(), c.Request(), url)
	return nil
}
