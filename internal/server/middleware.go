// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"codeberg.org/oliverandrich/jobportal/internal/appcontext"
	"codeberg.org/oliverandrich/jobportal/internal/config"
	"codeberg.org/oliverandrich/jobportal/internal/htmx"
	appmw "codeberg.org/oliverandrich/jobportal/internal/middleware"
	"codeberg.org/oliverandrich/jobportal/internal/observability"
	"codeberg.org/oliverandrich/jobportal/internal/services/session"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func setupMiddleware(e *echo.Echo, cfg *config.Config, sessions *session.Manager, users appmw.UserLookup, metrics *observability.Metrics, assets *appcontext.Assets) {
	e.Pre(appmw.StripTrailingSlash())

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger())
	e.Use(metrics.Middleware())
	e.Use(middleware.Secure())
	e.Use(middleware.Gzip())
	e.Use(middleware.BodyLimit(fmt.Sprintf("%dM", cfg.Server.MaxBodySize)))
	e.Use(staticCacheHeaders())
	e.Use(csrfMiddleware(cfg))
	e.Use(csrfToContext())
	e.Use(assetsToContext(assets))
	e.Use(appmw.Locale())
	e.Use(appmw.LoadSession(sessions, users))
}

// csrfMiddleware configures CSRF protection for the HTML forms.
func csrfMiddleware(cfg *config.Config) echo.MiddlewareFunc {
	return middleware.CSRFWithConfig(middleware.CSRFConfig{
		Skipper:        skipCSRF,
		TokenLookup:    "form:csrf_token,header:X-CSRF-Token",
		CookieName:     "_csrf",
		CookiePath:     "/",
		CookieSecure:   cfg.SecureCookies(),
		CookieHTTPOnly: true,
		CookieSameSite: http.SameSiteLaxMode,
	})
}

// skipCSRF exempts endpoints that never render or accept forms.
func skipCSRF(c echo.Context) bool {
	path := c.Request().URL.Path
	return strings.HasPrefix(path, "/static/") || path == "/health" || path == "/metrics"
}

// csrfToContext copies the CSRF token to the request context.
func csrfToContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token, ok := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string); ok {
				ctx := appcontext.WithCSRFToken(c.Request().Context(), token)
				c.SetRequest(c.Request().WithContext(ctx))
			}
			return next(c)
		}
	}
}

// requestLogger returns middleware that logs requests using slog.
func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			if htmx.IsRequest(c.Request()) {
				attrs = append(attrs, slog.Bool("htmx", true))
			}

			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				slog.LogAttrs(c.Request().Context(), slog.LevelError, "request", attrs...)
			} else {
				slog.LogAttrs(c.Request().Context(), slog.LevelInfo, "request", attrs...)
			}

			return nil
		},
	})
}

// staticCacheHeaders adds cache headers for static assets.
func staticCacheHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if strings.HasPrefix(path, "/static/") {
				if isHashedAsset(path) {
					// Hashed assets get immutable caching
					c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
				} else {
					c.Response().Header().Set("Cache-Control", "no-cache")
				}
			}
			return next(c)
		}
	}
}

// isHashedAsset checks if the path contains a hash pattern like .abc12345.
func isHashedAsset(path string) bool {
	// Match pattern: name.HASH.ext where HASH is 8 hex characters
	parts := strings.Split(path, ".")
	if len(parts) < 3 {
		return false
	}
	hash := parts[len(parts)-2]
	if len(hash) != 8 {
		return false
	}
	for _, c := range hash {
		isDigit := c >= '0' && c <= '9'
		isHexLetter := c >= 'a' && c <= 'f'
		if !isDigit && !isHexLetter {
			return false
		}
	}
	return true
}
