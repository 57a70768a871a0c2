// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"codeberg.org/oliverandrich/jobportal/internal/config"
	"codeberg.org/oliverandrich/jobportal/internal/database"
	"codeberg.org/oliverandrich/jobportal/internal/models"
	"codeberg.org/oliverandrich/jobportal/internal/repository"
	"codeberg.org/oliverandrich/jobportal/internal/services/session"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"
)

// TestHashKey is a fixed 32-byte hex session key for tests.
const TestHashKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

// NewTestDB creates an in-memory SQLite database for tests.
// Returns both the database connection and the repository for convenience.
func NewTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	repo := repository.New(db)
	return db, repo
}

// NewFileTestDB creates a file-backed SQLite database in a temp dir.
// Use it when a test needs more than one connection.
func NewFileTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	db, err := database.OpenSQLite(t.TempDir() + "/test.db")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db, repository.New(db)
}

// NewMockDB returns a repository backed by go-sqlmock.
func NewMockDB(t *testing.T) (*repository.Repository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = mockDB.Close()
	})
	return repository.New(sqlx.NewDb(mockDB, "sqlite")), mock
}

// NewTestUser creates a test user in the database.
func NewTestUser(t *testing.T, repo *repository.Repository, email string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "Test " + string(role),
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Role:         role,
	}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

// NewTestJob creates a job posted by employerID.
func NewTestJob(t *testing.T, repo *repository.Repository, employerID int64, title string) *models.Job {
	t.Helper()
	job := &models.Job{
		Title:       title,
		Company:     "Acme",
		Description: "Build things",
		Salary:      "50k",
		Location:    "Remote",
		PostedBy:    employerID,
	}
	require.NoError(t, repo.CreateJob(context.Background(), job))
	return job
}

// NewTestSessionManager returns a session manager with a fixed key.
func NewTestSessionManager(t *testing.T) *session.Manager {
	t.Helper()
	mgr, err := session.NewManager(&config.SessionConfig{
		CookieName: "_session",
		MaxAge:     3600,
		HashKey:    TestHashKey,
	}, false)
	require.NoError(t, err)
	return mgr
}

// NewEchoContext creates an Echo context for handler tests.
func NewEchoContext(e *echo.Echo, method, path string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

// NewFormContext creates an Echo context carrying an urlencoded form body.
func NewFormContext(e *echo.Echo, method, path string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

// NewEchoContextWithHeaders creates an Echo context with custom headers.
func NewEchoContextWithHeaders(e *echo.Echo, method, path string, body io.Reader, headers map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, path string, body io.Reader) *http.Request {
	return httptest.NewRequest(method, path, body)
}

// CookieFrom returns the named cookie set on a recorded response.
func CookieFrom(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
