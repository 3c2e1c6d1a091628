package main

import (
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crucial707/forum-web/internal/auth"
	"github.com/crucial707/forum-web/internal/config"
	"github.com/crucial707/forum-web/internal/forum"
	"github.com/crucial707/forum-web/internal/handlers"
	"github.com/crucial707/forum-web/internal/middleware"
	"github.com/crucial707/forum-web/internal/session"
	"github.com/crucial707/forum-web/internal/storage"
)

//go:embed templates static
var assetsFS embed.FS

const loginPath = "/auth/login"

type app struct {
	cfg      config.Config
	log      *slog.Logger
	catalog  *forum.Catalog
	pages    map[string]*template.Template
	sessions *middleware.Sessions
	api      *handlers.AuthHandler
	now      func() time.Time
}

// newApp wires the pages to their session storage and auth backends. A nil
// shared storage keeps sessions in the browser cookie; a nil authn logs in
// locally.
func newApp(cfg config.Config, log *slog.Logger, shared session.Storage, authn auth.Authenticator, registrar auth.Registrar) (*app, error) {
	a := &app{
		cfg:     cfg,
		log:     log,
		catalog: forum.Mock(),
		api:     handlers.NewAuthHandler(cfg.Auth.ReservedEmails, log),
		now:     time.Now,
		sessions: &middleware.Sessions{
			Cookies:    storage.NewCookieStore(cfg.Session.CookieSecret, cfg.Session.CookieSecure),
			CookieName: cfg.Session.CookieName,
			Shared:     shared,
			Authn:      authn,
			Registrar:  registrar,
			Log:        log,
		},
	}
	pages, err := parsePages(a.funcs())
	if err != nil {
		return nil, err
	}
	a.pages = pages
	return a, nil
}

func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer(a.log))
	r.Use(middleware.RequestLog(a.log))
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(a.cfg.Session.CookieSecure))

	// Health (no session, no templates)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	static, _ := fs.Sub(assetsFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	// Placeholder JSON API
	r.Group(func(r chi.Router) {
		r.Use(middleware.CORS(a.cfg.CORSAllowedOrigins))
		r.Use(middleware.MaxBytes(a.cfg.MaxBodyBytes))
		r.Mount("/api/auth", a.api.Routes())
	})

	// Pages
	r.Group(func(r chi.Router) {
		r.Use(middleware.MaxBytes(a.cfg.MaxBodyBytes))
		r.Use(a.sessions.Middleware)

		r.Get("/", a.home)
		r.Get("/posts", a.postsList)
		r.Get("/posts/{id}", a.postDetail)

		r.Get("/auth/login", a.loginForm)
		r.Post("/auth/login", a.loginSubmit)
		r.Get("/auth/register", a.registerForm)
		r.Post("/auth/register", a.registerSubmit)
		r.Get("/auth/logout", a.logout)
		r.Post("/auth/logout", a.logout)

		// Protected
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser(loginPath))
			r.Get("/posts/new", a.newPostForm)
			r.Post("/posts/new", a.newPostSubmit)
		})
	})

	r.NotFound(a.sessions.Middleware(http.HandlerFunc(a.notFound)).ServeHTTP)
	return r
}
