// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package templates

import (
	"codeberg.org/oliverandrich/jobportal/internal/models"
	"github.com/a-h/templ"
)

// FieldErrors maps a form field to the message ID describing its problem.
type FieldErrors map[string]string

// RegisterForm is the state of the registration form.
type RegisterForm struct {
	Errors  FieldErrors
	Name    string
	Email   string
	Role    models.Role
	Message string
}

// Roles lists the selectable roles.
func (RegisterForm) Roles() []models.Role {
	return models.Roles()
}

type LoginForm struct {
	Email   string
	Message string
}

// ForgotPasswordForm is the state of the forgot-password page. Sent is set
// after a submission; ResetLink is only filled in development.
type ForgotPasswordForm struct {
	Errors    FieldErrors
	Email     string
	ResetLink string
	Sent      bool
}

type ResetPasswordForm struct {
	Errors FieldErrors
	Token  string
}

// JobForm is the state of the job posting form.
type JobForm struct {
	Errors      FieldErrors
	Title       string
	Company     string
	Description string
	Salary      string
	Location    string
}

type SeekerDashboardData struct {
	Name         string
	Applications []models.AppliedJob
}

type EmployerDashboardData struct {
	Name string
	Jobs []models.Job
}

// JobsData lists postings; CanApply enables the apply buttons for job seekers.
type JobsData struct {
	Jobs     []models.JobListing
	CanApply bool
}

// ErrorData describes an error page. Message is a message ID.
type ErrorData struct {
	Message string
	Status  int
}

func Home() templ.Component {
	return render("home", "home_title", nil)
}

func About() templ.Component {
	return render("about", "about_title", nil)
}

func Register(form RegisterForm) templ.Component {
	return render("register", "register_title", form)
}

func Login(form LoginForm) templ.Component {
	return render("login", "login_title", form)
}

func ForgotPassword(form ForgotPasswordForm) templ.Component {
	return render("forgot_password", "forgot_title", form)
}

func ResetPassword(form ResetPasswordForm) templ.Component {
	return render("reset_password", "reset_title", form)
}

func ResetDone() templ.Component {
	return render("reset_done", "reset_title", nil)
}

func SeekerDashboard(data SeekerDashboardData) templ.Component {
	return render("dashboard_seeker", "dashboard_title", data)
}

func EmployerDashboard(data EmployerDashboardData) templ.Component {
	return render("dashboard_employer", "dashboard_title", data)
}

func JobPost(form JobForm) templ.Component {
	return render("job_post", "job_post_title", form)
}

func Jobs(data JobsData) templ.Component {
	return render("jobs", "jobs_title", data)
}

// Error renders the error page for an HTTP status.
func Error(data ErrorData) templ.Component {
	return render("error", "error_title", data)
}
