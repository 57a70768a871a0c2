// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"codeberg.org/oliverandrich/jobportal/internal/services/auth"
	"codeberg.org/oliverandrich/jobportal/internal/templates"
	"github.com/labstack/echo/v4"
	"github.com/samber/oops"
)

// ErrorHandler renders errors as HTML error pages. Handlers return
// echo.NewHTTPError with a message ID ("error_...") to choose the text.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := ""

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if id, ok := he.Message.(string); ok && strings.HasPrefix(id, "error_") {
			message = id
		}
	}
	if message == "" {
		message = messageForStatus(status)
	}

	if status >= http.StatusInternalServerError {
		logError(c, "request failed", err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}

	if renderErr := Render(c, status, templates.Error(templates.ErrorData{Status: status, Message: message})); renderErr != nil {
		slog.Error("failed to render error page", "error", renderErr)
		_ = c.String(status, http.StatusText(status))
	}
}

func messageForStatus(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge:
		return "error_bad_request"
	case http.StatusForbidden:
		return "error_forbidden"
	case http.StatusNotFound:
		return "error_not_found"
	case http.StatusMethodNotAllowed:
		return "error_method_not_allowed"
	default:
		return "error_internal"
	}
}

// logError logs err with its oops code and context when it has them.
func logError(c echo.Context, msg string, err error) {
	attrs := []any{
		"method", c.Request().Method,
		"uri", c.Request().RequestURI,
	}
	if oopsErr, ok := oops.AsOops(err); ok {
		attrs = append(attrs, "error", oopsErr.Error())
		if code := oopsErr.Code(); code != "" {
			attrs = append(attrs, "code", code)
		}
		if ctx := oopsErr.Context(); len(ctx) > 0 {
			attrs = append(attrs, "context", ctx)
		}
	} else {
		attrs = append(attrs, "error", err)
	}
	slog.ErrorContext(c.Request().Context(), msg, attrs...)
}

// storeError tags a failed repository call made directly by a handler.
func storeError(op string, err error) error {
	return oops.
		Code(auth.CodeStoreUnavailable).
		In("handlers").
		With("operation", op).
		Wrap(fmt.Errorf("%w: %w", auth.ErrStoreUnavailable, err))
}
