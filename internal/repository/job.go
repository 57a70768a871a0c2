// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"codeberg.org/oliverandrich/jobportal/internal/models"
)

const jobColumns = `id, title, company, description, salary, location, posted_by, created_at`

// CreateJob inserts a job posting.
func (r *Repository) CreateJob(ctx context.Context, job *models.Job) error {
	job.CreatedAt = r.now()
	err := r.db.QueryRowxContext(ctx,
		r.q(`INSERT INTO jobs (title, company, description, salary, location, posted_by, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		job.Title, job.Company, job.Description, job.Salary, job.Location, job.PostedBy, job.CreatedAt,
	).Scan(&job.ID)
	return wrapError(err)
}

// GetJob retrieves a job by ID.
func (r *Repository) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	var job models.Job
	err := r.db.GetContext(ctx, &job, r.q(`SELECT `+jobColumns+` FROM jobs WHERE id = ?`), id)
	if err != nil {
		return nil, wrapError(err)
	}
	return &job, nil
}

// ListJobs returns all jobs, newest first.
func (r *Repository) ListJobs(ctx context.Context) ([]models.Job, error) {
	jobs := []models.Job{}
	err := r.db.SelectContext(ctx, &jobs, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, wrapError(err)
	}
	return jobs, nil
}

// ListJobsByEmployer returns the jobs posted by one employer, newest first.
func (r *Repository) ListJobsByEmployer(ctx context.Context, userID int64) ([]models.Job, error) {
	jobs := []models.Job{}
	err := r.db.SelectContext(ctx, &jobs,
		r.q(`SELECT `+jobColumns+` FROM jobs WHERE posted_by = ? ORDER BY created_at DESC, id DESC`), userID)
	if err != nil {
		return nil, wrapError(err)
	}
	return jobs, nil
}
