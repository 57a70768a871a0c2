// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"errors"

	"codeberg.org/oliverandrich/jobportal/internal/models"
)

// CreateApplication records that userID applied to jobID. It reports false
// when the application already existed.
func (r *Repository) CreateApplication(ctx context.Context, jobID, userID int64) (bool, error) {
	_, err := r.db.ExecContext(ctx,
		r.q(`INSERT INTO applications (job_id, user_id, created_at) VALUES (?, ?, ?)`),
		jobID, userID, r.now())
	if err = wrapError(err); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// AppliedJobIDs returns the set of job IDs the user has applied to.
func (r *Repository) AppliedJobIDs(ctx context.Context, userID int64) (map[int64]bool, error) {
	var ids []int64
	err := r.db.SelectContext(ctx, &ids, r.q(`SELECT job_id FROM applications WHERE user_id = ?`), userID)
	if err != nil {
		return nil, wrapError(err)
	}

	applied := make(map[int64]bool, len(ids))
	for _, id := range ids {
		applied[id] = true
	}
	return applied, nil
}

// ListApplicationsByUser returns the jobs a user applied to, most recent application first.
func (r *Repository) ListApplicationsByUser(ctx context.Context, userID int64) ([]models.AppliedJob, error) {
	applied := []models.AppliedJob{}
	err := r.db.SelectContext(ctx, &applied, r.q(`
		SELECT j.id, j.title, j.company, j.description, j.salary, j.location, j.posted_by, j.created_at,
		       a.created_at AS applied_at
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE a.user_id = ?
		ORDER BY a.created_at DESC, a.id DESC`), userID)
	if err != nil {
		return nil, wrapError(err)
	}
	return applied, nil
}
