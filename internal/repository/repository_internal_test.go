// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"postgres unique violation", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, true},
		{"wrapped postgres unique violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation}), true},
		{"postgres foreign key violation", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, false},
		{"plain error", errors.New("UNIQUE constraint failed"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isUniqueViolation(tt.err))
		})
	}
}

func TestWrapError(t *testing.T) {
	assert.NoError(t, wrapError(nil))
	assert.ErrorIs(t, wrapError(sql.ErrNoRows), ErrNotFound)

	dup := wrapError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
	assert.ErrorIs(t, dup, ErrDuplicate)

	other := errors.New("boom")
	assert.Equal(t, other, wrapError(other))
}
