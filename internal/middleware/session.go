package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gorilla/sessions"

	"github.com/crucial707/forum-web/internal/auth"
	"github.com/crucial707/forum-web/internal/session"
	"github.com/crucial707/forum-web/internal/storage"
)

type key string

const serviceKey key = "auth_service"

// Sessions binds an auth.Service to every request. The service reads and
// writes the browser's signed cookie, or, when Shared is set, a namespace of
// Shared keyed by the id kept in that cookie.
type Sessions struct {
	Cookies    sessions.Store
	CookieName string
	Shared     session.Storage
	Authn      auth.Authenticator
	Registrar  auth.Registrar
	Log        *slog.Logger
}

func (s *Sessions) Middleware(next http.Handler) http.Handler {
	log := s.Log
	if log == nil {
		log = slog.Default()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie := storage.NewCookie(s.Cookies, s.CookieName, w, r)

		var st session.Storage = cookie
		if s.Shared != nil {
			id, err := cookie.BrowserID()
			if err != nil {
				log.ErrorContext(r.Context(), "issuing browser id failed", "error", err)
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			st = storage.Namespace(s.Shared, id)
		}

		svc := auth.NewService(session.NewStore(st, log), s.Authn, s.Registrar, log)
		svc.Init(r.Context())

		ctx := context.WithValue(r.Context(), serviceKey, svc)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Service returns the request's auth.Service, or nil outside Sessions.
func Service(ctx context.Context) *auth.Service {
	svc, _ := ctx.Value(serviceKey).(*auth.Service)
	return svc
}

// WithService returns ctx carrying svc.
func WithService(ctx context.Context, svc *auth.Service) context.Context {
	return context.WithValue(ctx, serviceKey, svc)
}

// RequireUser redirects to loginPath?next=<current path> when nobody is signed in.
func RequireUser(loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			svc := Service(r.Context())
			if svc != nil {
				if _, ok := svc.User(); ok {
					next.ServeHTTP(w, r)
					return
				}
			}
			target := r.URL.Path
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, loginPath+"?next="+url.QueryEscape(target), http.StatusFound)
		})
	}
}
