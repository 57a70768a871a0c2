// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"log/slog"

	"codeberg.org/oliverandrich/jobportal/internal/appcontext"
	"codeberg.org/oliverandrich/jobportal/internal/assets"
	"github.com/labstack/echo/v4"
)

// findAssets returns the fingerprinted asset paths of the embedded files.
func findAssets() *appcontext.Assets {
	a := &appcontext.Assets{
		CSSPath: assets.CSSPath(),
	}
	slog.Debug("assets loaded", "css", a.CSSPath)
	return a
}

// assetsToContext makes the asset paths available to templates.
func assetsToContext(a *appcontext.Assets) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := appcontext.WithAssets(c.Request().Context(), a)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
