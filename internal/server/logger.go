// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// parseLevel maps a configured level name to a slog level. Unknown names
// fall back to info.
func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// newLogHandler builds the text (tint) or JSON handler writing to w.
func newLogHandler(w io.Writer, level, format string) slog.Handler {
	lvl := parseLevel(level)
	if format == "json" {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl, AddSource: lvl <= slog.LevelDebug})
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		AddSource:  lvl <= slog.LevelDebug,
		TimeFormat: time.TimeOnly,
	})
}

// setupLogger configures the global slog logger.
func setupLogger(level, format string) {
	slog.SetDefault(slog.New(newLogHandler(os.Stdout, level, format)))
}
