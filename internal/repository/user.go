// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"codeberg.org/oliverandrich/jobportal/internal/models"
)

const userColumns = `id, name, email, password_hash, role, created_at`

// CreateUser inserts a user and fills in its ID and creation time.
// A second user with the same email yields ErrDuplicate.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	user.CreatedAt = r.now()
	err := r.db.QueryRowxContext(ctx,
		r.q(`INSERT INTO users (name, email, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?) RETURNING id`),
		user.Name, user.Email, user.PasswordHash, string(user.Role), user.CreatedAt,
	).Scan(&user.ID)
	return wrapError(err)
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, r.q(`SELECT `+userColumns+` FROM users WHERE id = ?`), id)
	if err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by exact email match.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, r.q(`SELECT `+userColumns+` FROM users WHERE email = ?`), email)
	if err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// UserExists checks if a user with the given email exists.
func (r *Repository) UserExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, r.q(`SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`), email)
	return exists, wrapError(err)
}

// UpdateUserPassword replaces a user's password hash.
func (r *Repository) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, r.q(`UPDATE users SET password_hash = ? WHERE id = ?`), passwordHash, id)
	if err != nil {
		return wrapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
