// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"codeberg.org/oliverandrich/jobportal/internal/models"
	"codeberg.org/oliverandrich/jobportal/internal/repository"
	"codeberg.org/oliverandrich/jobportal/internal/services/token"
)

// DefaultResetMaxAge is how long a reset link stays valid.
const DefaultResetMaxAge = 3600 * time.Second

// UserStore is the subset of the repository the auth flows need.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UserExists(ctx context.Context, email string) (bool, error)
	UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error
}

// Options configures a Service.
type Options struct {
	// BaseURL is the externally visible origin used in reset links.
	BaseURL     string
	ResetMaxAge time.Duration
}

type Service struct {
	store     UserStore
	hasher    Hasher
	tokens    *token.Codec
	baseURL   string
	dummyHash string
	maxAge    time.Duration
}

func NewService(store UserStore, hasher Hasher, tokens *token.Codec, opts Options) *Service {
	if opts.ResetMaxAge <= 0 {
		opts.ResetMaxAge = DefaultResetMaxAge
	}

	// Used for constant-time login when the email is unknown.
	dummyHash, _ := hasher.Hash("dummy-password-for-timing")

	return &Service{
		store:     store,
		hasher:    hasher,
		tokens:    tokens,
		baseURL:   strings.TrimSuffix(opts.BaseURL, "/"),
		dummyHash: dummyHash,
		maxAge:    opts.ResetMaxAge,
	}
}

// RegisterParams holds the parameters for user registration
type RegisterParams struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
}

// Register creates a new user account
func (s *Service) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	if !params.Role.Valid() {
		return nil, ErrInvalidRole
	}

	if !validEmail(params.Email) {
		return nil, ErrInvalidEmail
	}

	if params.Password == "" {
		return nil, ErrEmptyPassword
	}

	if len(params.Password) > MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	exists, err := s.store.UserExists(ctx, params.Email)
	if err != nil {
		return nil, storeError("register", err)
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	passwordHash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(params.Name),
		Email:        params.Email,
		PasswordHash: passwordHash,
		Role:         params.Role,
	}

	// The unique index settles concurrent registrations for one email.
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, storeError("register", err)
	}

	slog.Info("register_success", "user_id", user.ID, "email", user.Email, "role", user.Role)

	return user, nil
}

// Login authenticates a user and returns the user if successful
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Constant-time: always perform a hash comparison to prevent timing attacks
			_ = s.hasher.Verify(password, s.dummyHash)
			slog.Warn("login_failed", "email", email, "reason", "user_not_found")
			return nil, ErrInvalidCredentials
		}
		return nil, storeError("login", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		slog.Warn("login_failed", "email", email, "reason", "invalid_password")
		return nil, ErrInvalidCredentials
	}

	slog.Info("login_success", "user_id", user.ID, "email", email)
	return user, nil
}

// RequestPasswordReset returns a reset link for email, or an empty link when
// no user has that address. Callers must respond identically in both cases.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			slog.Info("password_reset_requested", "email", email, "matched", false)
			return "", nil
		}
		return "", storeError("request_password_reset", err)
	}

	tok, err := s.tokens.Issue(user.Email, token.Fingerprint(user.PasswordHash))
	if err != nil {
		return "", fmt.Errorf("failed to issue reset token: %w", err)
	}

	slog.Info("password_reset_requested", "email", email, "matched", true, "user_id", user.ID)

	return s.ResetLink(tok), nil
}

// ResetLink builds the absolute URL of the reset form for tok.
func (s *Service) ResetLink(tok string) string {
	return s.baseURL + "/reset-password/" + url.PathEscape(tok)
}

// ValidateResetToken returns the user a reset token was issued for. A token
// stops validating once the user's password has changed.
func (s *Service) ValidateResetToken(ctx context.Context, tok string) (*models.User, error) {
	claims, err := s.tokens.Validate(tok, s.maxAge)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	user, err := s.store.GetUserByEmail(ctx, claims.Email())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, storeError("validate_reset_token", err)
	}

	current := token.Fingerprint(user.PasswordHash)
	if subtle.ConstantTimeCompare([]byte(current), []byte(claims.Fingerprint)) != 1 {
		return nil, ErrTokenInvalid
	}

	return user, nil
}

// ResetPassword sets a new password for the user a valid token was issued for.
func (s *Service) ResetPassword(ctx context.Context, tok, newPassword string) error {
	user, err := s.ValidateResetToken(ctx, tok)
	if err != nil {
		return err
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := s.store.UpdateUserPassword(ctx, user.ID, passwordHash); err != nil {
		return storeError("reset_password", err)
	}

	slog.Info("password_reset_done", "user_id", user.ID, "email", user.Email)
	return nil
}

// validEmail accepts a bare address only, without display name or brackets.
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
