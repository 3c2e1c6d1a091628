package storage

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

// browserIDKey holds the random id that namespaces server-side entries.
const browserIDKey = "sid"

// NewCookieStore returns the signed cookie store shared by all requests.
func NewCookieStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   30 * 24 * 3600,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Cookie keeps entries inside one browser's signed session cookie. It is bound
// to a single request and must write before the response body starts.
type Cookie struct {
	store sessions.Store
	name  string
	w     http.ResponseWriter
	r     *http.Request
	sess  *sessions.Session
}

func NewCookie(store sessions.Store, name string, w http.ResponseWriter, r *http.Request) *Cookie {
	return &Cookie{store: store, name: name, w: w, r: r}
}

// session returns the request's cookie session. A cookie that fails
// verification yields a fresh session, as if the browser had none.
func (c *Cookie) session() *sessions.Session {
	if c.sess != nil {
		return c.sess
	}
	sess, _ := c.store.Get(c.r, c.name)
	if sess == nil {
		sess = sessions.NewSession(c.store, c.name)
		sess.IsNew = true
	}
	c.sess = sess
	return sess
}

func (c *Cookie) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := c.session().Values[key].(string)
	return v, ok, nil
}

func (c *Cookie) Set(_ context.Context, key, value string) error {
	sess := c.session()
	sess.Values[key] = value
	return sess.Save(c.r, c.w)
}

func (c *Cookie) Delete(_ context.Context, key string) error {
	sess := c.session()
	if _, ok := sess.Values[key]; !ok {
		return nil
	}
	delete(sess.Values, key)
	return sess.Save(c.r, c.w)
}

// BrowserID returns the id stored in this browser's cookie, issuing and saving
// a new one when absent.
func (c *Cookie) BrowserID() (string, error) {
	sess := c.session()
	if id, ok := sess.Values[browserIDKey].(string); ok && id != "" {
		return id, nil
	}
	id := uuid.NewString()
	sess.Values[browserIDKey] = id
	if err := sess.Save(c.r, c.w); err != nil {
		return "", err
	}
	return id, nil
}
