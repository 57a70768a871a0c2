// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"codeberg.org/oliverandrich/jobportal/internal/appcontext"
	"codeberg.org/oliverandrich/jobportal/internal/middleware"
	"codeberg.org/oliverandrich/jobportal/internal/models"
	"codeberg.org/oliverandrich/jobportal/internal/templates"
	"github.com/labstack/echo/v4"
)

// Dashboard renders the view for the session's role. Any role other than
// Job Seeker or Employer is rejected.
func (h *Handlers) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()

	sess := appcontext.SessionFrom(ctx)
	if sess == nil {
		return redirect(c, middleware.LoginPath)
	}

	switch sess.Role {
	case models.RoleJobSeeker:
		applications, err := h.repo.ListApplicationsByUser(ctx, sess.UserID)
		if err != nil {
			return storeError("list_applications", err)
		}
		return Render(c, http.StatusOK, templates.SeekerDashboard(templates.SeekerDashboardData{
			Name:         sess.Name,
			Applications: applications,
		}))
	case models.RoleEmployer:
		jobs, err := h.repo.ListJobsByEmployer(ctx, sess.UserID)
		if err != nil {
			return storeError("list_employer_jobs", err)
		}
		return Render(c, http.StatusOK, templates.EmployerDashboard(templates.EmployerDashboardData{
			Name: sess.Name,
			Jobs: jobs,
		}))
	default:
		return echo.NewHTTPError(http.StatusForbidden, "error_invalid_role")
	}
}
