// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package appcontext_test

import (
	"context"
	"testing"

	"codeberg.org/oliverandrich/jobportal/internal/appcontext"
	"codeberg.org/oliverandrich/jobportal/internal/models"
	"codeberg.org/oliverandrich/jobportal/internal/services/session"
	"github.com/stretchr/testify/assert"
)

func TestSessionFrom(t *testing.T) {
	data := &session.Data{UserID: 123, Name: "Ada", Role: models.RoleEmployer}
	ctx := appcontext.WithSession(context.Background(), data)

	result := appcontext.SessionFrom(ctx)

	assert.Equal(t, data, result)
	assert.Equal(t, int64(123), result.UserID)
}

func TestSessionFrom_Nil(t *testing.T) {
	assert.Nil(t, appcontext.SessionFrom(context.Background()))
}

func TestWithCSRFToken(t *testing.T) {
	ctx := appcontext.WithCSRFToken(context.Background(), "token")

	assert.Equal(t, "token", ctx.Value(appcontext.CSRFToken{}))
}

func TestWithAssets(t *testing.T) {
	ctx := appcontext.WithAssets(context.Background(), &appcontext.Assets{CSSPath: "/static/css/styles.0123abcd.css"})

	assert.Equal(t, "/static/css/styles.0123abcd.css", ctx.Value(appcontext.CSSPath{}))
}
