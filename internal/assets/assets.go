// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

//go:build !dev

// Package assets provides embedded static assets with content-hashed filenames.
package assets

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
)

//go:embed static
var staticFS embed.FS

const stylesheet = "css/styles.css"

var (
	cssPath string
	// hashed maps a content-hashed file name to the embedded file.
	hashed = map[string]string{}
)

func init() {
	cssPath = "/static/" + stylesheet

	data, err := staticFS.ReadFile("static/" + stylesheet)
	if err != nil {
		slog.Error("failed to read stylesheet", "error", err)
		return
	}

	name := hashedName(stylesheet, data)
	hashed[name] = stylesheet
	cssPath = "/static/" + name

	slog.Debug("loaded asset paths", "css", cssPath)
}

// hashedName inserts the first 8 hex characters of the content hash before
// the extension: css/styles.css becomes css/styles.0123abcd.css.
func hashedName(name string, data []byte) string {
	sum := sha256.Sum256(data)
	ext := path.Ext(name)
	return strings.TrimSuffix(name, ext) + "." + hex.EncodeToString(sum[:4]) + ext
}

// CSSPath returns the path to the main CSS file.
func CSSPath() string {
	return cssPath
}

// FileServer returns an http.Handler that serves embedded static files.
// Mount it with the /static/ prefix stripped.
func FileServer() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("failed to create sub filesystem: " + err.Error())
	}
	files := http.FileServer(http.FS(sub))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if original, ok := hashed[strings.TrimPrefix(r.URL.Path, "/")]; ok {
			r = r.Clone(r.Context())
			r.URL.Path = "/" + original
		}
		files.ServeHTTP(w, r)
	})
}
