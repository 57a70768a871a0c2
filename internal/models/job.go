// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import (
	"time"
)

// Job is a posting created by an employer.
type Job struct {
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	Title       string    `db:"title" json:"title"`
	Company     string    `db:"company" json:"company"`
	Description string    `db:"description" json:"description"`
	Salary      string    `db:"salary" json:"salary"`
	Location    string    `db:"location" json:"location"`
	ID          int64     `db:"id" json:"id"`
	PostedBy    int64     `db:"posted_by" json:"posted_by"`
}

// Application records that a job seeker applied to a job.
type Application struct {
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	ID        int64     `db:"id" json:"id"`
	JobID     int64     `db:"job_id" json:"job_id"`
	UserID    int64     `db:"user_id" json:"user_id"`
}

// AppliedJob joins an application with the job it targets.
type AppliedJob struct {
	AppliedAt time.Time `db:"applied_at" json:"applied_at"`
	Job
}

// JobListing is a job as shown on the listing page.
type JobListing struct {
	Job
	Applied bool
}

// NewJobListings marks every job whose ID is in applied.
func NewJobListings(jobs []Job, applied map[int64]bool) []JobListing {
	listings := make([]JobListing, 0, len(jobs))
	for _, j := range jobs {
		listings = append(listings, JobListing{Job: j, Applied: applied[j.ID]})
	}
	return listings
}
