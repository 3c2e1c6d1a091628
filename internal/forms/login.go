package forms

import (
	"context"
	"strings"

	"github.com/crucial707/forum-web/internal/models"
	"github.com/crucial707/forum-web/internal/validation"
)

type LoginForm struct {
	status
	svc LoginService

	// OnSuccess runs after a successful login, outside the form's lock.
	OnSuccess func(models.User)

	values validation.LoginValues
	errs   validation.LoginErrors
}

func NewLoginForm(svc LoginService) *LoginForm {
	return &LoginForm{svc: svc}
}

func (f *LoginForm) SetEmail(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.editable() {
		f.values.Email = v
		f.errs.Email = ""
	}
}

func (f *LoginForm) SetPassword(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.editable() {
		f.values.Password = v
		f.errs.Password = ""
	}
}

func (f *LoginForm) Values() validation.LoginValues {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

func (f *LoginForm) Errors() validation.LoginErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs
}

// Submit validates the form and, when valid, logs in. It reports whether the
// login succeeded; field errors and the banner explain a false result. The
// only error returned is ErrSubmitInProgress.
func (f *LoginForm) Submit(ctx context.Context) (bool, error) {
	f.mu.Lock()
	if f.state == Submitting {
		f.mu.Unlock()
		return false, ErrSubmitInProgress
	}
	f.errs = validation.Login(f.values)
	if !f.errs.Valid() {
		f.mu.Unlock()
		return false, nil
	}
	f.state = Submitting
	f.serverError = ""
	email, password := strings.TrimSpace(f.values.Email), f.values.Password
	f.mu.Unlock()

	user, err := f.svc.Login(ctx, email, password)
	f.finish(err, MsgLoginFallback)
	if err != nil {
		return false, nil
	}
	if f.OnSuccess != nil {
		f.OnSuccess(user)
	}
	return true, nil
}
