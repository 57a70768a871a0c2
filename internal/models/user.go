// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import (
	"time"
)

// Role determines which dashboard and job routes a user may reach.
type Role string

const (
	RoleJobSeeker Role = "Job Seeker"
	RoleEmployer  Role = "Employer"
)

// Roles lists the roles a user can register with.
func Roles() []Role {
	return []Role{RoleJobSeeker, RoleEmployer}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleJobSeeker, RoleEmployer:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

type User struct {
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	ID           int64     `db:"id" json:"id"`
}

// IsEmployer reports whether the user registered as an employer.
func (u *User) IsEmployer() bool {
	return u.Role == RoleEmployer
}
