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

func TestCreateUser(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user := &models.User{Name: "Ada", Email: "a@x.com", PasswordHash: "hash", Role: models.RoleJobSeeker}
	err := repo.CreateUser(ctx, user)

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotZero(t, user.CreatedAt)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	first := testutil.NewTestUser(t, repo, "a@x.com", models.RoleJobSeeker)

	err := repo.CreateUser(ctx, &models.User{Name: "B", Email: "a@x.com", PasswordHash: "other", Role: models.RoleEmployer})

	require.ErrorIs(t, err, repository.ErrDuplicate)

	stored, err := repo.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, "not-a-real-hash", stored.PasswordHash)
	assert.Equal(t, models.RoleJobSeeker, stored.Role)
}

func TestCreateUser_EmailIsCaseSensitive(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	testutil.NewTestUser(t, repo, "a@x.com", models.RoleJobSeeker)
	upper := testutil.NewTestUser(t, repo, "A@x.com", models.RoleJobSeeker)

	assert.NotZero(t, upper.ID)
}

func TestGetUserByID(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	created := testutil.NewTestUser(t, repo, "a@x.com", models.RoleEmployer)

	retrieved, err := repo.GetUserByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, retrieved.ID)
	assert.Equal(t, created.Email, retrieved.Email)
	assert.Equal(t, created.Name, retrieved.Name)
	assert.Equal(t, models.RoleEmployer, retrieved.Role)
	assert.WithinDuration(t, created.CreatedAt, retrieved.CreatedAt, 0)
}

func TestGetUserByID_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	_, err := repo.GetUserByID(context.Background(), 999)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetUserByEmail(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	created := testutil.NewTestUser(t, repo, "a@x.com", models.RoleJobSeeker)

	retrieved, err := repo.GetUserByEmail(ctx, "a@x.com")

	require.NoError(t, err)
	assert.Equal(t, created.ID, retrieved.ID)
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	_, err := repo.GetUserByEmail(context.Background(), "nobody@x.com")

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserExists(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	testutil.NewTestUser(t, repo, "a@x.com", models.RoleJobSeeker)

	exists, err := repo.UserExists(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.UserExists(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUpdateUserPassword(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user := testutil.NewTestUser(t, repo, "a@x.com", models.RoleJobSeeker)

	require.NoError(t, repo.UpdateUserPassword(ctx, user.ID, "new-hash"))

	retrieved, err := repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", retrieved.PasswordHash)
}

func TestUpdateUserPassword_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	err := repo.UpdateUserPassword(context.Background(), 999, "new-hash")

	assert.ErrorIs(t, err, repository.ErrNotFound)
}
