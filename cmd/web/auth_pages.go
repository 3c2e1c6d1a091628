package main

import (
	"net/http"
	"strings"

	"github.com/crucial707/forum-web/internal/forms"
	"github.com/crucial707/forum-web/internal/middleware"
	"github.com/crucial707/forum-web/internal/models"
	"github.com/crucial707/forum-web/internal/validation"
)

// safeNext keeps redirects on this site. Anything but a local absolute path
// becomes "/".
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

func signedIn(r *http.Request) bool {
	svc := middleware.Service(r.Context())
	if svc == nil {
		return false
	}
	_, ok := svc.User()
	return ok
}

// ==========================
// Login
// ==========================
func (a *app) loginForm(w http.ResponseWriter, r *http.Request) {
	if signedIn(r) {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	a.render(w, r, http.StatusOK, "login.html", map[string]interface{}{
		"Title":      "Log in",
		"Next":       safeNext(r.URL.Query().Get("next")),
		"Registered": r.URL.Query().Get("registered") == "1",
		"Email":      "",
		"Errors":     validation.LoginErrors{},
	})
}

func (a *app) loginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	next := safeNext(r.PostFormValue("next"))

	form := forms.NewLoginForm(middleware.Service(r.Context()))
	form.SetEmail(r.PostFormValue("email"))
	form.SetPassword(r.PostFormValue("password"))
	form.OnSuccess = func(models.User) {
		http.Redirect(w, r, next, http.StatusFound)
	}

	ok, err := form.Submit(r.Context())
	if err != nil {
		a.log.ErrorContext(r.Context(), "login submit", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if ok {
		return
	}

	a.render(w, r, http.StatusOK, "login.html", map[string]interface{}{
		"Title":       "Log in",
		"Next":        next,
		"Email":       form.Values().Email,
		"Errors":      form.Errors(),
		"ServerError": form.ServerError(),
	})
}

// ==========================
// Register (does not sign in)
// ==========================
func (a *app) registerForm(w http.ResponseWriter, r *http.Request) {
	if signedIn(r) {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	a.render(w, r, http.StatusOK, "register.html", map[string]interface{}{
		"Title":    "Create account",
		"Username": "",
		"Email":    "",
		"Errors":   validation.RegisterErrors{},
	})
}

func (a *app) registerSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	form := forms.NewRegisterForm(middleware.Service(r.Context()))
	form.SetUsername(r.PostFormValue("username"))
	form.SetEmail(r.PostFormValue("email"))
	form.SetPassword(r.PostFormValue("password"))
	form.SetConfirmPassword(r.PostFormValue("confirmPassword"))
	form.OnSuccess = func() {
		http.Redirect(w, r, loginPath+"?registered=1", http.StatusFound)
	}

	ok, err := form.Submit(r.Context())
	if err != nil {
		a.log.ErrorContext(r.Context(), "register submit", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if ok {
		return
	}

	v := form.Values()
	a.render(w, r, http.StatusOK, "register.html", map[string]interface{}{
		"Title":       "Create account",
		"Username":    v.Username,
		"Email":       v.Email,
		"Errors":      form.Errors(),
		"ServerError": form.ServerError(),
	})
}

// ==========================
// Logout
// ==========================
func (a *app) logout(w http.ResponseWriter, r *http.Request) {
	if svc := middleware.Service(r.Context()); svc != nil {
		svc.Logout(r.Context())
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
