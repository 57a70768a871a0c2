// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package middleware provides Echo middleware for sessions, roles and locale.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"codeberg.org/oliverandrich/jobportal/internal/appcontext"
	"codeberg.org/oliverandrich/jobportal/internal/htmx"
	"codeberg.org/oliverandrich/jobportal/internal/models"
	"codeberg.org/oliverandrich/jobportal/internal/repository"
	"codeberg.org/oliverandrich/jobportal/internal/services/session"
	"github.com/labstack/echo/v4"
)

// LoginPath is where requests without a session are sent.
const LoginPath = "/login"

// UserLookup finds the account behind a session.
type UserLookup interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// LoadSession parses the session cookie and stores the session in the
// request context. Invalid or expired cookies are ignored. A session whose
// user no longer exists is dropped and its cookie cleared.
func LoadSession(mgr *session.Manager, users UserLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			data, err := mgr.Parse(c.Request())
			if err != nil {
				return err
			}
			if data == nil {
				return next(c)
			}

			ctx := c.Request().Context()
			if _, err := users.GetUserByID(ctx, data.UserID); err != nil {
				if !errors.Is(err, repository.ErrNotFound) {
					return err
				}
				slog.InfoContext(ctx, "session_dropped", "user_id", data.UserID, "reason", "user_not_found")
				c.SetCookie(mgr.Clear())
				return next(c)
			}

			c.SetRequest(c.Request().WithContext(appcontext.WithSession(ctx, data)))
			return next(c)
		}
	}
}

// RequireSession redirects requests without a session to the login page.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if appcontext.SessionFrom(c.Request().Context()) == nil {
				htmx.Redirect(c.Response(), c.Request(), LoginPath)
				return nil
			}
			return next(c)
		}
	}
}

// RequireRole rejects sessions with a different role. It must run after
// RequireSession.
func RequireRole(role models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			data := appcontext.SessionFrom(c.Request().Context())
			if data == nil || data.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, "error_forbidden")
			}
			return next(c)
		}
	}
}
