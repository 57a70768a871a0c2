// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"codeberg.org/oliverandrich/jobportal/internal/models"
	"codeberg.org/oliverandrich/jobportal/internal/observability"
	"codeberg.org/oliverandrich/jobportal/internal/services/auth"
	"codeberg.org/oliverandrich/jobportal/internal/templates"
	"github.com/labstack/echo/v4"
)

// RegisterPage renders the registration form.
func (h *Handlers) RegisterPage(c echo.Context) error {
	return Render(c, http.StatusOK, templates.Register(templates.RegisterForm{Role: models.RoleJobSeeker}))
}

// Register creates an account and sends the user to the login page.
func (h *Handlers) Register(c echo.Context) error {
	var in registerInput
	if err := c.Bind(&in); err != nil {
		return err
	}
	in.normalize()

	form := templates.RegisterForm{Name: in.Name, Email: in.Email, Role: models.Role(in.Role)}
	if form.Errors = validateForm(in); form.Errors != nil {
		return Render(c, http.StatusUnprocessableEntity, templates.Register(form))
	}

	_, err := h.auth.Register(c.Request().Context(), auth.RegisterParams{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Role:     models.Role(in.Role),
	})
	switch {
	case err == nil:
		h.metrics.AuthEvent("register", observability.OutcomeSuccess)
		return redirect(c, "/login")
	case errors.Is(err, auth.ErrDuplicateEmail):
		h.metrics.AuthEvent("register", "duplicate_email")
		form.Message = "register_email_taken"
		return Render(c, http.StatusConflict, templates.Register(form))
	case errors.Is(err, auth.ErrInvalidRole):
		form.Errors = templates.FieldErrors{"role": "validation_role"}
	case errors.Is(err, auth.ErrInvalidEmail):
		form.Errors = templates.FieldErrors{"email": "validation_email"}
	case errors.Is(err, auth.ErrEmptyPassword):
		form.Errors = templates.FieldErrors{"password": "validation_required"}
	case errors.Is(err, auth.ErrPasswordTooLong):
		form.Errors = templates.FieldErrors{"password": "validation_password_too_long"}
	default:
		return err
	}

	h.metrics.AuthEvent("register", observability.OutcomeFailure)
	return Render(c, http.StatusUnprocessableEntity, templates.Register(form))
}

// LoginPage renders the login form.
func (h *Handlers) LoginPage(c echo.Context) error {
	return Render(c, http.StatusOK, templates.Login(templates.LoginForm{}))
}

// Login checks the credentials, stores the session and sends the user to
// the dashboard.
func (h *Handlers) Login(c echo.Context) error {
	var in loginInput
	if err := c.Bind(&in); err != nil {
		return err
	}

	user, err := h.auth.Login(c.Request().Context(), in.Email, in.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		h.metrics.AuthEvent("login", observability.OutcomeFailure)
		return Render(c, http.StatusUnauthorized, templates.Login(templates.LoginForm{
			Email:   in.Email,
			Message: "login_invalid",
		}))
	}
	if err != nil {
		return err
	}

	cookie, err := h.sessions.Create(user.ID, user.Name, user.Role)
	if err != nil {
		return err
	}
	c.SetCookie(cookie)

	h.metrics.AuthEvent("login", observability.OutcomeSuccess)
	return redirect(c, "/dashboard")
}

// Logout clears the session. It is safe to call without one.
func (h *Handlers) Logout(c echo.Context) error {
	c.SetCookie(h.sessions.Clear())
	return redirect(c, "/")
}

// ForgotPasswordPage renders the forgot-password form.
func (h *Handlers) ForgotPasswordPage(c echo.Context) error {
	return Render(c, http.StatusOK, templates.ForgotPassword(templates.ForgotPasswordForm{}))
}

// ForgotPassword mails a reset link when the address belongs to an account.
// The response is the same whether or not it does.
func (h *Handlers) ForgotPassword(c echo.Context) error {
	var in forgotPasswordInput
	if err := c.Bind(&in); err != nil {
		return err
	}

	form := templates.ForgotPasswordForm{Email: in.Email}
	if form.Errors = validateForm(in); form.Errors != nil {
		return Render(c, http.StatusUnprocessableEntity, templates.ForgotPassword(form))
	}

	ctx := c.Request().Context()
	link, err := h.auth.RequestPasswordReset(ctx, in.Email)
	if err != nil {
		return err
	}

	if link != "" {
		if err := h.mailer.SendPasswordReset(ctx, in.Email, link); err != nil {
			// The response must not depend on delivery.
			slog.ErrorContext(ctx, "failed to send password reset email", "email", in.Email, "error", err)
		}
		if h.showResetLink {
			form.ResetLink = link
		}
	}

	h.metrics.AuthEvent("password_reset_request", observability.OutcomeSuccess)
	form.Sent = true
	return Render(c, http.StatusOK, templates.ForgotPassword(form))
}

// ResetPasswordPage renders the new-password form for a valid token.
func (h *Handlers) ResetPasswordPage(c echo.Context) error {
	tok := c.Param("token")
	if _, err := h.auth.ValidateResetToken(c.Request().Context(), tok); err != nil {
		return h.tokenError(err)
	}
	return Render(c, http.StatusOK, templates.ResetPassword(templates.ResetPasswordForm{Token: tok}))
}

// ResetPassword stores the new password for a valid token. The token is
// checked before the form so a dead link never renders the form again.
func (h *Handlers) ResetPassword(c echo.Context) error {
	tok := c.Param("token")
	ctx := c.Request().Context()

	if _, err := h.auth.ValidateResetToken(ctx, tok); err != nil {
		return h.tokenError(err)
	}

	var in resetPasswordInput
	if err := c.Bind(&in); err != nil {
		return err
	}

	form := templates.ResetPasswordForm{Token: tok}
	if form.Errors = validateForm(in); form.Errors != nil {
		return Render(c, http.StatusUnprocessableEntity, templates.ResetPassword(form))
	}

	err := h.auth.ResetPassword(ctx, tok, in.Password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		form.Errors = templates.FieldErrors{"password": "validation_password_too_long"}
		return Render(c, http.StatusUnprocessableEntity, templates.ResetPassword(form))
	}
	if err != nil {
		return h.tokenError(err)
	}

	h.metrics.AuthEvent("password_reset", observability.OutcomeSuccess)
	return Render(c, http.StatusOK, templates.ResetDone())
}

// tokenError maps reset token failures to an error page.
func (h *Handlers) tokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		h.metrics.AuthEvent("password_reset", "token_expired")
		return echo.NewHTTPError(http.StatusBadRequest, "error_token_expired")
	case errors.Is(err, auth.ErrTokenInvalid):
		h.metrics.AuthEvent("password_reset", "token_invalid")
		return echo.NewHTTPError(http.StatusBadRequest, "error_token_invalid")
	default:
		return err
	}
}
