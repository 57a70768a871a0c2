// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package htmx provides helpers for answering htmx requests.
package htmx

import (
	"net/http"
)

const (
	// HeaderRequest is set to "true" on every request htmx issues.
	HeaderRequest = "HX-Request"
	// HeaderRedirect tells htmx to navigate the whole page.
	HeaderRedirect = "HX-Redirect"
)

// IsRequest reports whether r was issued by htmx.
func IsRequest(r *http.Request) bool {
	return r.Header.Get(HeaderRequest) == "true"
}

// Redirect sends the client to url. htmx requests get an HX-Redirect header
// so the browser performs a full navigation; others get a 303.
func Redirect(w http.ResponseWriter, r *http.Request, url string) {
	if IsRequest(r) {
		w.Header().Set(HeaderRedirect, url)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}
