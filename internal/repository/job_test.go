// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"

	"codeberg.org/oliverandrich/jobportal/internal/models"
	"codeberg.org/oliverandrich/jobportal/internal/repository"
	"codeberg.org/oliverandrich/jobportal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateJob(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	employer := testutil.NewTestUser(t, repo, "boss@x.com", models.RoleEmployer)
	job := &models.Job{
		Title:       "Go Developer",
		Company:     "Acme",
		Description: "Write Go",
		Location:    "Berlin",
		PostedBy:    employer.ID,
	}

	require.NoError(t, repo.CreateJob(ctx, job))
	assert.NotZero(t, job.ID)

	stored, err := repo.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go Developer", stored.Title)
	assert.Empty(t, stored.Salary)
	assert.Equal(t, employer.ID, stored.PostedBy)
}

func TestCreateJob_UnknownEmployer(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	err := repo.CreateJob(context.Background(), &models.Job{
		Title: "t", Company: "c", Description: "d", Location: "l", PostedBy: 42,
	})

	assert.Error(t, err)
}

func TestGetJob_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	_, err := repo.GetJob(context.Background(), 999)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListJobs(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	jobs, err := repo.ListJobs(ctx)
	require.NoError(t, err)
	assert.Empty(t, jobs)

	employer := testutil.NewTestUser(t, repo, "boss@x.com", models.RoleEmployer)
	first := testutil.NewTestJob(t, repo, employer.ID, "First")
	second := testutil.NewTestJob(t, repo, employer.ID, "Second")

	jobs, err = repo.ListJobs(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, second.ID, jobs[0].ID)
	assert.Equal(t, first.ID, jobs[1].ID)
}

func TestListJobsByEmployer(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	a := testutil.NewTestUser(t, repo, "a@x.com", models.RoleEmployer)
	b := testutil.NewTestUser(t, repo, "b@x.com", models.RoleEmployer)
	testutil.NewTestJob(t, repo, a.ID, "A1")
	testutil.NewTestJob(t, repo, a.ID, "A2")
	testutil.NewTestJob(t, repo, b.ID, "B1")

	jobs, err := repo.ListJobsByEmployer(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	for _, j := range jobs {
		assert.Equal(t, a.ID, j.PostedBy)
	}

	jobs, err = repo.ListJobsByEmployer(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}
