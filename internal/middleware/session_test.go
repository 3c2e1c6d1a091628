package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crucial707/forum-web/internal/session"
	"github.com/crucial707/forum-web/internal/storage"
)

func loginHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		svc := Service(r.Context())
		require.NotNil(t, svc)
		assert.False(t, svc.Loading())
		if r.URL.Path == "/login" {
			_, err := svc.Login(r.Context(), "a@b.com", "x")
			require.NoError(t, err)
		}
		if u, ok := svc.User(); ok {
			_, _ = w.Write([]byte(u.Email))
		}
	})
}

func carryCookies(from *httptest.ResponseRecorder, to *http.Request) {
	for _, c := range from.Result().Cookies() {
		to.AddCookie(c)
	}
}

func TestSessions_CookieBackend(t *testing.T) {
	s := &Sessions{Cookies: storage.NewCookieStore("test-secret", false), CookieName: "forum_session"}
	h := s.Middleware(loginHandler(t))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("POST", "/login", nil))
	assert.Equal(t, "a@b.com", rr.Body.String())

	req := httptest.NewRequest("GET", "/", nil)
	carryCookies(rr, req)
	rr2 := httptest.NewRecorder()
	h.ServeHTTP(rr2, req)
	assert.Equal(t, "a@b.com", rr2.Body.String())

	rr3 := httptest.NewRecorder()
	h.ServeHTTP(rr3, httptest.NewRequest("GET", "/", nil))
	assert.Empty(t, rr3.Body.String(), "another browser must not see the session")
}

func TestSessions_SharedBackendIsNamespaced(t *testing.T) {
	shared := session.NewMemoryStorage()
	s := &Sessions{
		Cookies:    storage.NewCookieStore("test-secret", false),
		CookieName: "forum_session",
		Shared:     shared,
	}
	h := s.Middleware(loginHandler(t))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("POST", "/login", nil))

	_, ok, err := shared.Get(context.Background(), session.Key)
	require.NoError(t, err)
	assert.False(t, ok, "entries must not be stored under the bare key")

	req := httptest.NewRequest("GET", "/", nil)
	carryCookies(rr, req)
	rr2 := httptest.NewRecorder()
	h.ServeHTTP(rr2, req)
	assert.Equal(t, "a@b.com", rr2.Body.String())
}

func TestRequireUser(t *testing.T) {
	s := &Sessions{Cookies: storage.NewCookieStore("test-secret", false), CookieName: "forum_session"}
	protected := s.Middleware(RequireUser("/auth/login")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("secret page"))
	})))

	rr := httptest.NewRecorder()
	protected.ServeHTTP(rr, httptest.NewRequest("GET", "/posts/new?draft=1", nil))
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/auth/login?next=%2Fposts%2Fnew%3Fdraft%3D1", rr.Header().Get("Location"))

	login := httptest.NewRecorder()
	s.Middleware(loginHandler(t)).ServeHTTP(login, httptest.NewRequest("POST", "/login", nil))

	req := httptest.NewRequest("GET", "/posts/new", nil)
	carryCookies(login, req)
	rr = httptest.NewRecorder()
	protected.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "secret page", rr.Body.String())
}
