// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package templates renders the HTML pages as templ components.
package templates

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"time"

	"codeberg.org/oliverandrich/jobportal/internal/models"
	"codeberg.org/oliverandrich/jobportal/internal/services/session"
	"github.com/a-h/templ"
)

//go:embed html/*.html
var htmlFS embed.FS

const layoutFile = "html/layout.html"

var pages = mustParsePages()

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("2006-01-02")
	},
	"paragraphs": func(s string) []string {
		return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n\n")
	},
}

// mustParsePages builds one template set per page, each sharing the layout.
func mustParsePages() map[string]*template.Template {
	files, err := fs.Glob(htmlFS, "html/*.html")
	if err != nil {
		panic(err)
	}

	parsed := make(map[string]*template.Template, len(files))
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(file, "html/"), ".html")
		parsed[name] = template.Must(template.New("layout.html").Funcs(funcs).ParseFS(htmlFS, layoutFile, file))
	}
	return parsed
}

// Page carries the values every page needs from the request context.
type Page struct {
	ctx     context.Context
	Session *session.Data
	Title   string // message ID
	CSRF    string
	CSSPath string
}

func newPage(ctx context.Context, title string) Page {
	return Page{
		ctx:     ctx,
		Session: CurrentSession(ctx),
		Title:   title,
		CSRF:    CSRFToken(ctx),
		CSSPath: CSSPath(ctx),
	}
}

// T translates a message ID for the current request.
func (p Page) T(messageID string) string {
	return T(p.ctx, messageID)
}

// TData translates a message ID with key/value template data.
func (p Page) TData(messageID string, kv ...any) string {
	data := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		data[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return TData(p.ctx, messageID, data)
}

func (p Page) Locale() string {
	return Locale(p.ctx)
}

func (p Page) LoggedIn() bool {
	return p.Session != nil
}

// IsEmployer reports whether the logged-in user posts jobs.
func (p Page) IsEmployer() bool {
	return p.Session != nil && p.Session.Role == models.RoleEmployer
}

// RoleLabel returns the translated name of a role.
func (p Page) RoleLabel(role models.Role) string {
	switch role {
	case models.RoleJobSeeker:
		return p.T("role_job_seeker")
	case models.RoleEmployer:
		return p.T("role_employer")
	default:
		return string(role)
	}
}

// View is the value passed to a page template.
type View struct {
	Page
	Data any
}

// render returns a component that executes the named page inside the layout.
func render(name, title string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		tmpl, ok := pages[name]
		if !ok {
			return fmt.Errorf("unknown page template %q", name)
		}
		return tmpl.ExecuteTemplate(w, "layout.html", View{
			Page: newPage(ctx, title),
			Data: data,
		})
	})
}
