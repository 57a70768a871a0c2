// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package token issues and validates signed, time-limited password reset tokens.
package token

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Audience scopes tokens to the password reset flow.
const Audience = "password-reset"

var (
	// ErrExpired is returned for a correctly signed token older than the allowed age.
	ErrExpired = errors.New("token expired")
	// ErrInvalid is returned for any token whose signature or payload does not check out.
	ErrInvalid = errors.New("token invalid")
)

// Claims carries the email a reset token was issued for and a fingerprint of
// the password hash at issuance.
type Claims struct {
	jwt.RegisteredClaims
	Fingerprint string `json:"fp"`
}

// Email returns the address the token was issued for.
func (c *Claims) Email() string {
	return c.Subject
}

// Codec signs tokens with HMAC-SHA256.
type Codec struct {
	now    func() time.Time
	secret []byte
}

// Option configures a Codec.
type Option func(*Codec)

// WithClock replaces the time source. Tests use it to move time forward.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		c.now = now
	}
}

// New creates a codec keyed by secret.
func New(secret string, opts ...Option) *Codec {
	c := &Codec{
		secret: []byte(secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Issue returns a signed token for email.
func (c *Codec) Issue(email, fingerprint string) (string, error) {
	if email == "" {
		return "", errors.New("token: empty email")
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  email,
			Audience: jwt.ClaimStrings{Audience},
			IssuedAt: jwt.NewNumericDate(c.now()),
		},
		Fingerprint: fingerprint,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Validate checks the signature first and the age second. A token with a bad
// signature is ErrInvalid no matter how old it is.
func (c *Codec) Validate(tokenString string, maxAge time.Duration) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(Audience),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalid
	}

	if claims.Subject == "" || claims.IssuedAt == nil {
		return nil, ErrInvalid
	}

	if c.now().Sub(claims.IssuedAt.Time) > maxAge {
		return nil, ErrExpired
	}

	return claims, nil
}

// Fingerprint derives a short, non-reversible tag from a password hash.
// A token bound to one fingerprint stops validating once the hash changes.
func Fingerprint(passwordHash string) string {
	sum := sha256.Sum256([]byte(passwordHash))
	return hex.EncodeToString(sum[:8])
}
