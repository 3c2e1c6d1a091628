package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// carry copies Set-Cookie headers from a response onto a new request.
func carry(rr *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestCookie_RoundTripAcrossRequests(t *testing.T) {
	ctx := context.Background()
	store := NewCookieStore("test-secret", false)

	rr := httptest.NewRecorder()
	c := NewCookie(store, "forum_session", rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, c.Set(ctx, "user", `{"id":1}`))

	next := NewCookie(store, "forum_session", httptest.NewRecorder(), carry(rr))
	v, ok, err := next.Get(ctx, "user")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":1}`, v)
}

func TestCookie_DeleteExpiresValue(t *testing.T) {
	ctx := context.Background()
	store := NewCookieStore("test-secret", false)

	rr := httptest.NewRecorder()
	require.NoError(t, NewCookie(store, "s", rr, httptest.NewRequest(http.MethodGet, "/", nil)).Set(ctx, "user", "x"))

	rr2 := httptest.NewRecorder()
	c := NewCookie(store, "s", rr2, carry(rr))
	require.NoError(t, c.Delete(ctx, "user"))
	require.NoError(t, c.Delete(ctx, "user"))

	_, ok, _ := NewCookie(store, "s", httptest.NewRecorder(), carry(rr2)).Get(ctx, "user")
	assert.False(t, ok)
}

func TestCookie_TamperedCookieIsEmpty(t *testing.T) {
	store := NewCookieStore("test-secret", false)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "s", Value: "garbage"})

	_, ok, err := NewCookie(store, "s", httptest.NewRecorder(), req).Get(context.Background(), "user")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCookie_WrongSecretIsEmpty(t *testing.T) {
	ctx := context.Background()
	rr := httptest.NewRecorder()
	require.NoError(t, NewCookie(NewCookieStore("one", false), "s", rr, httptest.NewRequest(http.MethodGet, "/", nil)).Set(ctx, "user", "x"))

	_, ok, _ := NewCookie(NewCookieStore("two", false), "s", httptest.NewRecorder(), carry(rr)).Get(ctx, "user")
	assert.False(t, ok)
}

func TestCookie_BrowserIDIsStable(t *testing.T) {
	store := NewCookieStore("test-secret", false)

	rr := httptest.NewRecorder()
	id, err := NewCookie(store, "s", rr, httptest.NewRequest(http.MethodGet, "/", nil)).BrowserID()
	require.NoError(t, err)
	require.NotEmpty(t, id)

	again, err := NewCookie(store, "s", httptest.NewRecorder(), carry(rr)).BrowserID()
	require.NoError(t, err)
	assert.Equal(t, id, again)
}
