// Package forms holds the login and registration form controllers.
//
// A form owns its field values, per-field errors, one server error banner and
// a submission state. Validation runs before anything leaves the form; only a
// valid form reaches the auth service, and only an auth failure becomes the
// banner.
package forms

import (
	"context"
	"errors"
	"sync"

	"github.com/crucial707/forum-web/internal/auth"
	"github.com/crucial707/forum-web/internal/models"
)

// Banner texts used when a failure carries no message.
const (
	MsgLoginFallback    = "login failed, check your email and password"
	MsgRegisterFallback = "registration failed, please try again later"
)

// ErrSubmitInProgress is returned by Submit while a previous submit is running.
var ErrSubmitInProgress = errors.New("submit already in progress")

type State int

const (
	Idle State = iota
	Submitting
)

func (s State) String() string {
	if s == Submitting {
		return "submitting"
	}
	return "idle"
}

// LoginService is the part of auth.Service the login form needs.
type LoginService interface {
	Login(ctx context.Context, email, password string) (models.User, error)
}

// RegisterService is the part of auth.Service the registration form needs.
type RegisterService interface {
	Register(ctx context.Context, username, email, password string) error
}

var (
	_ LoginService    = (*auth.Service)(nil)
	_ RegisterService = (*auth.Service)(nil)
)

// status is the state shared by both forms. Callers hold mu.
type status struct {
	mu          sync.Mutex
	state       State
	serverError string
}

// editable reports whether field edits are accepted and, if so, clears the
// banner. Callers hold mu.
func (s *status) editable() bool {
	if s.state == Submitting {
		return false
	}
	s.serverError = ""
	return true
}

func (s *status) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ServerError returns the banner text, empty when there is none.
func (s *status) ServerError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serverError
}

func (s *status) finish(err error, fallback string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Idle
	if err != nil {
		s.serverError = auth.Message(err, fallback)
	}
}
