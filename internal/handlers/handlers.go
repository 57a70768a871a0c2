// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"context"
	"net/http"
	"time"

	"codeberg.org/oliverandrich/jobportal/internal/observability"
	"codeberg.org/oliverandrich/jobportal/internal/repository"
	"codeberg.org/oliverandrich/jobportal/internal/services/auth"
	"codeberg.org/oliverandrich/jobportal/internal/services/email"
	"codeberg.org/oliverandrich/jobportal/internal/services/session"
	"codeberg.org/oliverandrich/jobportal/internal/templates"
	"github.com/labstack/echo/v4"
)

// Deps are the collaborators the handlers need.
type Deps struct {
	Repo     *repository.Repository
	Auth     *auth.Service
	Sessions *session.Manager
	Mailer   email.Mailer
	Metrics  *observability.Metrics
	// ShowResetLink renders reset links on the forgot-password page.
	// Development only.
	ShowResetLink bool
}

// Handlers contains all HTTP handlers.
type Handlers struct {
	repo          *repository.Repository
	auth          *auth.Service
	sessions      *session.Manager
	mailer        email.Mailer
	metrics       *observability.Metrics
	showResetLink bool
}

// New creates a new Handlers instance.
func New(d Deps) *Handlers {
	mailer := d.Mailer
	if mailer == nil {
		mailer = email.LogMailer{}
	}
	return &Handlers{
		repo:          d.Repo,
		auth:          d.Auth,
		sessions:      d.Sessions,
		mailer:        mailer,
		metrics:       d.Metrics,
		showResetLink: d.ShowResetLink,
	}
}

// Health reports whether the database answers.
func (h *Handlers) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := h.repo.Ping(ctx); err != nil {
		logError(c, "health check failed", err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Home renders the home page.
func (h *Handlers) Home(c echo.Context) error {
	return Render(c, http.StatusOK, templates.Home())
}

// About renders the about page.
func (h *Handlers) About(c echo.Context) error {
	return Render(c, http.StatusOK, templates.About())
}
