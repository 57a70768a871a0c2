// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package session keeps the logged-in identity in a signed cookie.
package session

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"codeberg.org/oliverandrich/jobportal/internal/config"
	"codeberg.org/oliverandrich/jobportal/internal/models"
	"github.com/gorilla/securecookie"
)

const keyLength = 32

// Data is the identity stored in the session cookie.
type Data struct {
	ExpiresAt time.Time   `json:"exp"`
	Name      string      `json:"name"`
	Role      models.Role `json:"role"`
	UserID    int64       `json:"uid"`
}

// Manager encodes and decodes session cookies.
type Manager struct {
	codec  *securecookie.SecureCookie
	name   string
	maxAge int
	secure bool
}

// NewManager creates a session manager. An empty hash key is replaced by a
// random one, which invalidates all sessions on restart.
func NewManager(cfg *config.SessionConfig, secure bool) (*Manager, error) {
	hashKey, err := decodeKey(cfg.HashKey, "hash")
	if err != nil {
		return nil, err
	}
	if hashKey == nil {
		hashKey = securecookie.GenerateRandomKey(keyLength)
		if hashKey == nil {
			return nil, errors.New("failed to generate session hash key")
		}
		slog.Warn("session hash key not configured, using a random key; sessions will not survive a restart")
	}

	blockKey, err := decodeKey(cfg.BlockKey, "block")
	if err != nil {
		return nil, err
	}

	codec := securecookie.New(hashKey, blockKey)
	codec.MaxAge(cfg.MaxAge)
	codec.SetSerializer(securecookie.JSONEncoder{})

	return &Manager{
		codec:  codec,
		name:   cfg.CookieName,
		maxAge: cfg.MaxAge,
		secure: secure,
	}, nil
}

func decodeKey(value, kind string) ([]byte, error) {
	if value == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid session %s key: %w", kind, err)
	}
	if len(key) != keyLength {
		return nil, fmt.Errorf("invalid session %s key: must be %d bytes, got %d", kind, keyLength, len(key))
	}
	return key, nil
}

// Create returns a cookie holding a new session for the user.
func (m *Manager) Create(userID int64, name string, role models.Role) (*http.Cookie, error) {
	data := Data{
		UserID:    userID,
		Name:      name,
		Role:      role,
		ExpiresAt: time.Now().Add(time.Duration(m.maxAge) * time.Second),
	}

	encoded, err := m.codec.Encode(m.name, data)
	if err != nil {
		return nil, err
	}

	return m.cookie(encoded, m.maxAge), nil
}

// Parse returns the session carried by r, or nil when there is none or the
// cookie is invalid, tampered with or expired.
func (m *Manager) Parse(r *http.Request) (*Data, error) {
	cookie, err := r.Cookie(m.name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil, nil
		}
		return nil, err
	}

	var data Data
	if err := m.codec.Decode(m.name, cookie.Value, &data); err != nil {
		return nil, nil //nolint:nilerr // an undecodable cookie means logged out
	}

	if data.UserID == 0 || time.Now().After(data.ExpiresAt) {
		return nil, nil
	}

	return &data, nil
}

// Clear returns a cookie that deletes the session.
func (m *Manager) Clear() *http.Cookie {
	return m.cookie("", -1)
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
