// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"codeberg.org/oliverandrich/jobportal/internal/appcontext"
	"codeberg.org/oliverandrich/jobportal/internal/models"
	"codeberg.org/oliverandrich/jobportal/internal/repository"
	"codeberg.org/oliverandrich/jobportal/internal/templates"
	"github.com/labstack/echo/v4"
)

// JobPostPage renders the job posting form.
func (h *Handlers) JobPostPage(c echo.Context) error {
	return Render(c, http.StatusOK, templates.JobPost(templates.JobForm{}))
}

// JobPost publishes a job for the logged-in employer.
func (h *Handlers) JobPost(c echo.Context) error {
	ctx := c.Request().Context()
	sess := appcontext.SessionFrom(ctx)
	if sess == nil || sess.Role != models.RoleEmployer {
		return echo.NewHTTPError(http.StatusForbidden, "error_forbidden")
	}

	var in jobInput
	if err := c.Bind(&in); err != nil {
		return err
	}
	in.normalize()

	if errs := validateForm(in); errs != nil {
		return Render(c, http.StatusUnprocessableEntity, templates.JobPost(templates.JobForm{
			Errors:      errs,
			Title:       in.Title,
			Company:     in.Company,
			Description: in.Description,
			Salary:      in.Salary,
			Location:    in.Location,
		}))
	}

	job := &models.Job{
		Title:       in.Title,
		Company:     in.Company,
		Description: in.Description,
		Salary:      in.Salary,
		Location:    in.Location,
		PostedBy:    sess.UserID,
	}
	if err := h.repo.CreateJob(ctx, job); err != nil {
		return storeError("create_job", err)
	}

	slog.InfoContext(ctx, "job_posted", "job_id", job.ID, "user_id", sess.UserID)
	return redirect(c, "/view-job")
}

// ViewJobs lists all postings, newest first. Job seekers see which ones
// they already applied for.
func (h *Handlers) ViewJobs(c echo.Context) error {
	ctx := c.Request().Context()

	jobs, err := h.repo.ListJobs(ctx)
	if err != nil {
		return storeError("list_jobs", err)
	}

	var applied map[int64]bool
	sess := appcontext.SessionFrom(ctx)
	canApply := sess != nil && sess.Role == models.RoleJobSeeker
	if canApply {
		applied, err = h.repo.AppliedJobIDs(ctx, sess.UserID)
		if err != nil {
			return storeError("applied_job_ids", err)
		}
	}

	return Render(c, http.StatusOK, templates.Jobs(templates.JobsData{
		Jobs:     models.NewJobListings(jobs, applied),
		CanApply: canApply,
	}))
}

// Apply records an application of the logged-in job seeker. Applying twice
// has no further effect.
func (h *Handlers) Apply(c echo.Context) error {
	ctx := c.Request().Context()
	sess := appcontext.SessionFrom(ctx)
	if sess == nil || sess.Role != models.RoleJobSeeker {
		return echo.NewHTTPError(http.StatusForbidden, "error_forbidden")
	}

	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	if _, err := h.repo.GetJob(ctx, jobID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return storeError("get_job", err)
	}

	created, err := h.repo.CreateApplication(ctx, jobID, sess.UserID)
	if err != nil {
		return storeError("create_application", err)
	}
	if created {
		slog.InfoContext(ctx, "job_applied", "job_id", jobID, "user_id", sess.UserID)
	}

	return redirect(c, "/view-job")
}
