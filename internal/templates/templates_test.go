// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package templates_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"codeberg.org/oliverandrich/jobportal/internal/appcontext"
	"codeberg.org/oliverandrich/jobportal/internal/i18n"
	"codeberg.org/oliverandrich/jobportal/internal/models"
	"codeberg.org/oliverandrich/jobportal/internal/services/session"
	"codeberg.org/oliverandrich/jobportal/internal/templates"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func renderString(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	return buf.String()
}

func englishContext() context.Context {
	_ = i18n.Init()
	return i18n.WithLocale(context.Background(), language.English)
}

func TestHome_Anonymous(t *testing.T) {
	html := renderString(t, englishContext(), templates.Home())

	assert.Contains(t, html, "<!doctype html>")
	assert.Contains(t, html, `<html lang="en">`)
	assert.Contains(t, html, "<title>Home · Job Portal</title>")
	assert.Contains(t, html, `href="/login"`)
	assert.NotContains(t, html, `href="/logout"`)
}

func TestLayout_LoggedInEmployer(t *testing.T) {
	ctx := appcontext.WithSession(englishContext(), &session.Data{UserID: 1, Name: "Acme", Role: models.RoleEmployer})

	html := renderString(t, ctx, templates.About())

	assert.Contains(t, html, `href="/logout"`)
	assert.Contains(t, html, `href="/job-post"`)
	assert.NotContains(t, html, `href="/register"`)
}

func TestLayout_GermanLocale(t *testing.T) {
	ctx := i18n.WithLocale(englishContext(), language.German)

	html := renderString(t, ctx, templates.Home())

	assert.Contains(t, html, `<html lang="de">`)
	assert.Contains(t, html, "Stellenportal")
}

func TestLayout_CSRFAndAssets(t *testing.T) {
	ctx := appcontext.WithCSRFToken(englishContext(), "csrf-123")
	ctx = appcontext.WithAssets(ctx, &appcontext.Assets{CSSPath: "/static/css/styles.0123abcd.css"})

	html := renderString(t, ctx, templates.Login(templates.LoginForm{}))

	assert.Contains(t, html, `name="csrf_token" value="csrf-123"`)
	assert.Contains(t, html, `href="/static/css/styles.0123abcd.css"`)
}

func TestRegister_KeepsInputAndShowsErrors(t *testing.T) {
	html := renderString(t, englishContext(), templates.Register(templates.RegisterForm{
		Name:    "Ada",
		Email:   "ada@example.com",
		Role:    models.RoleEmployer,
		Message: "register_email_taken",
		Errors:  templates.FieldErrors{"password": "validation_required"},
	}))

	assert.Contains(t, html, "Email already exists")
	assert.Contains(t, html, `value="ada@example.com"`)
	assert.Contains(t, html, "This field is required.")
	assert.Contains(t, html, `<option value="Employer" selected>`)
	assert.Contains(t, html, `<option value="Job Seeker">`)
}

func TestRegister_EscapesInput(t *testing.T) {
	html := renderString(t, englishContext(), templates.Register(templates.RegisterForm{
		Name: `<script>alert(1)</script>`,
	}))

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestForgotPassword(t *testing.T) {
	t.Run("before submit", func(t *testing.T) {
		html := renderString(t, englishContext(), templates.ForgotPassword(templates.ForgotPasswordForm{}))

		assert.Contains(t, html, "Enter your email address")
		assert.NotContains(t, html, "a reset link is on its way")
	})

	t.Run("after submit without link", func(t *testing.T) {
		html := renderString(t, englishContext(), templates.ForgotPassword(templates.ForgotPasswordForm{Sent: true}))

		assert.Contains(t, html, "a reset link is on its way")
		assert.NotContains(t, html, "Development reset link")
	})

	t.Run("development link", func(t *testing.T) {
		html := renderString(t, englishContext(), templates.ForgotPassword(templates.ForgotPasswordForm{
			Sent:      true,
			ResetLink: "http://localhost:5000/reset-password/abc.def",
		}))

		assert.Contains(t, html, `href="http://localhost:5000/reset-password/abc.def"`)
	})
}

func TestResetPassword_PostsToToken(t *testing.T) {
	html := renderString(t, englishContext(), templates.ResetPassword(templates.ResetPasswordForm{Token: "aaa.bbb.ccc"}))

	assert.Contains(t, html, `action="/reset-password/aaa.bbb.ccc"`)
}

func TestDashboards_AreDistinct(t *testing.T) {
	seeker := renderString(t, englishContext(), templates.SeekerDashboard(templates.SeekerDashboardData{Name: "Ada"}))
	employer := renderString(t, englishContext(), templates.EmployerDashboard(templates.EmployerDashboardData{Name: "Acme"}))

	assert.Contains(t, seeker, "Welcome, Ada!")
	assert.Contains(t, seeker, `class="dashboard seeker"`)
	assert.Contains(t, seeker, "You have not applied for any jobs yet.")
	assert.Contains(t, employer, "Welcome, Acme!")
	assert.Contains(t, employer, `class="dashboard employer"`)
	assert.NotContains(t, employer, `class="dashboard seeker"`)
}

func TestSeekerDashboard_ListsApplications(t *testing.T) {
	applied := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	html := renderString(t, englishContext(), templates.SeekerDashboard(templates.SeekerDashboardData{
		Name: "Ada",
		Applications: []models.AppliedJob{
			{AppliedAt: applied, Job: models.Job{ID: 1, Title: "Gopher", Company: "Acme", Location: "Remote"}},
		},
	}))

	assert.Contains(t, html, "<td>Gopher</td>")
	assert.Contains(t, html, "2025-03-14")
}

func TestJobs(t *testing.T) {
	listings := []models.JobListing{
		{Job: models.Job{ID: 1, Title: "Applied job", Description: "one\n\ntwo"}, Applied: true},
		{Job: models.Job{ID: 2, Title: "Open job", Salary: "60k"}},
	}

	t.Run("job seeker sees markers and apply buttons", func(t *testing.T) {
		html := renderString(t, englishContext(), templates.Jobs(templates.JobsData{Jobs: listings, CanApply: true}))

		assert.Contains(t, html, `class="badge applied"`)
		assert.Contains(t, html, `action="/jobs/2/apply"`)
		assert.NotContains(t, html, `action="/jobs/1/apply"`)
		assert.Contains(t, html, "<p>one</p>")
		assert.Contains(t, html, "<p>two</p>")
		assert.Contains(t, html, "60k")
	})

	t.Run("anonymous sees no apply buttons", func(t *testing.T) {
		plain := []models.JobListing{{Job: models.Job{ID: 2, Title: "Open job"}}}
		html := renderString(t, englishContext(), templates.Jobs(templates.JobsData{Jobs: plain}))

		assert.NotContains(t, html, "/apply")
		assert.NotContains(t, html, `class="badge applied"`)
	})

	t.Run("empty list", func(t *testing.T) {
		html := renderString(t, englishContext(), templates.Jobs(templates.JobsData{}))

		assert.Contains(t, html, "There are no job postings yet.")
	})
}

func TestJobPost_ShowsFieldErrors(t *testing.T) {
	html := renderString(t, englishContext(), templates.JobPost(templates.JobForm{
		Title:  "Gopher",
		Errors: templates.FieldErrors{"company": "validation_required"},
	}))

	assert.Contains(t, html, `value="Gopher"`)
	assert.Contains(t, html, "This field is required.")
}

func TestError(t *testing.T) {
	html := renderString(t, englishContext(), templates.Error(templates.ErrorData{Status: 403, Message: "error_invalid_role"}))

	assert.Contains(t, html, "<h1>403</h1>")
	assert.Contains(t, html, "Invalid role")
}

func TestHelpers_Defaults(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, templates.CSRFToken(ctx))
	assert.Equal(t, "/static/css/styles.css", templates.CSSPath(ctx))
	assert.Equal(t, "en", templates.Locale(ctx))
	assert.False(t, templates.IsAuthenticated(ctx))
	assert.Nil(t, templates.CurrentSession(ctx))
}
