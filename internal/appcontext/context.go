// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package appcontext provides the request context keys shared by middleware,
// handlers and templates.
package appcontext

import (
	"context"

	"codeberg.org/oliverandrich/jobportal/internal/services/session"
)

// Context keys for storing values in context.Context.
type (
	// CSRFToken is the context key for the CSRF token.
	CSRFToken struct{}
	// CSSPath is the context key for the CSS path.
	CSSPath struct{}
	// Session is the context key for the parsed session.
	Session struct{}
)

// Assets holds paths to static assets.
type Assets struct {
	CSSPath string
}

// WithSession stores the session of the current request.
func WithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, Session{}, data)
}

// SessionFrom returns the session of the current request, or nil if there is none.
func SessionFrom(ctx context.Context) *session.Data {
	if data, ok := ctx.Value(Session{}).(*session.Data); ok {
		return data
	}
	return nil
}

// WithCSRFToken stores the CSRF token for forms.
func WithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, CSRFToken{}, token)
}

// WithAssets stores the asset paths for the layout.
func WithAssets(ctx context.Context, assets *Assets) context.Context {
	return context.WithValue(ctx, CSSPath{}, assets.CSSPath)
}
