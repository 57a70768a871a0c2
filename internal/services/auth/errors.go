// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth

import (
	"errors"
	"fmt"

	"github.com/samber/oops"
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("reset link expired")
	ErrTokenInvalid       = errors.New("reset link invalid")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrEmptyPassword      = errors.New("password cannot be empty")
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

// CodeStoreUnavailable tags store failures for logging.
const CodeStoreUnavailable = "STORE_UNAVAILABLE"

// storeError wraps a failed store call so that callers can match
// ErrStoreUnavailable while logs keep the operation and cause.
func storeError(op string, err error) error {
	return oops.
		Code(CodeStoreUnavailable).
		In("auth").
		With("operation", op).
		Wrap(fmt.Errorf("%w: %w", ErrStoreUnavailable, err))
}
