package main

import (
	"bytes"
	"html/template"
	"net/http"
	"time"

	"github.com/crucial707/forum-web/internal/forum"
	"github.com/crucial707/forum-web/internal/middleware"
)

var pageNames = []string{
	"home.html",
	"posts.html",
	"post.html",
	"new_post.html",
	"login.html",
	"register.html",
	"not_found.html",
}

func (a *app) funcs() template.FuncMap {
	return template.FuncMap{
		"age":        func(t time.Time) string { return forum.FormatAge(t, a.now()) },
		"date":       func(t time.Time) string { return t.Format("2006-01-02 15:04") },
		"paragraphs": forum.Paragraphs,
		"initial": func(s string) string {
			for _, r := range s {
				return string(r)
			}
			return "?"
		},
	}
}

// parsePages parses every page together with the shared layout.
func parsePages(funcs template.FuncMap) (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(assetsFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, err
		}
		pages[name] = t
	}
	return pages, nil
}

// render executes page name inside the layout. The signed-in user and the
// category list are added to data for the header.
func (a *app) render(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]interface{}) {
	t, ok := a.pages[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	if data == nil {
		data = map[string]interface{}{}
	}
	if svc := middleware.Service(r.Context()); svc != nil {
		if u, ok := svc.User(); ok {
			data["CurrentUser"] = u
		}
	}
	data["Categories"] = a.catalog.Categories()

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		a.log.ErrorContext(r.Context(), "template execute", "page", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
