package forms

import (
	"context"
	"strings"

	"github.com/crucial707/forum-web/internal/validation"
)

type RegisterForm struct {
	status
	svc RegisterService

	// OnSuccess runs after a successful registration, outside the form's
	// lock. Registration does not sign in, so it usually leads to login.
	OnSuccess func()

	values validation.RegisterValues
	errs   validation.RegisterErrors
}

func NewRegisterForm(svc RegisterService) *RegisterForm {
	return &RegisterForm{svc: svc}
}

func (f *RegisterForm) SetUsername(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.editable() {
		f.values.Username = v
		f.errs.Username = ""
	}
}

func (f *RegisterForm) SetEmail(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.editable() {
		f.values.Email = v
		f.errs.Email = ""
	}
}

func (f *RegisterForm) SetPassword(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.editable() {
		f.values.Password = v
		f.errs.Password = ""
	}
}

func (f *RegisterForm) SetConfirmPassword(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.editable() {
		f.values.ConfirmPassword = v
		f.errs.ConfirmPassword = ""
	}
}

func (f *RegisterForm) Values() validation.RegisterValues {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

func (f *RegisterForm) Errors() validation.RegisterErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs
}

// Submit validates the form and, when valid, registers the account. It
// behaves like LoginForm.Submit.
func (f *RegisterForm) Submit(ctx context.Context) (bool, error) {
	f.mu.Lock()
	if f.state == Submitting {
		f.mu.Unlock()
		return false, ErrSubmitInProgress
	}
	f.errs = validation.Register(f.values)
	if !f.errs.Valid() {
		f.mu.Unlock()
		return false, nil
	}
	f.state = Submitting
	f.serverError = ""
	username := strings.TrimSpace(f.values.Username)
	email := strings.TrimSpace(f.values.Email)
	password := f.values.Password
	f.mu.Unlock()

	err := f.svc.Register(ctx, username, email, password)
	f.finish(err, MsgRegisterFallback)
	if err != nil {
		return false, nil
	}
	if f.OnSuccess != nil {
		f.OnSuccess()
	}
	return true, nil
}
