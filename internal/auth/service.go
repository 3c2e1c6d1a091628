// Package auth mediates between the forms and the authentication backend.
//
// A Service belongs to one client: a CLI process, or a single browser for the
// duration of a web request. It keeps that client's current user and a
// loading flag, and persists the user through a session.Store.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/crucial707/forum-web/internal/metrics"
	"github.com/crucial707/forum-web/internal/models"
	"github.com/crucial707/forum-web/internal/session"
)

type Service struct {
	store     *session.Store
	authn     Authenticator
	registrar Registrar
	log       *slog.Logger

	mu      sync.RWMutex
	user    *models.User
	loading bool
}

// NewService returns a Service that reports Loading until Init has run.
func NewService(store *session.Store, authn Authenticator, registrar Registrar, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	if authn == nil {
		authn = LocalAuthenticator{}
	}
	return &Service{
		store:     store,
		authn:     authn,
		registrar: registrar,
		log:       log,
		loading:   true,
	}
}

// Init loads the persisted session once. A stored user becomes the current
// user. Loading is false afterwards whatever the outcome; a backend failure is
// logged and treated as signed out.
func (s *Service) Init(ctx context.Context) {
	user, err := s.store.Load(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "session load failed, continuing signed out", "error", err)
		user = nil
	}

	s.mu.Lock()
	s.user = user
	s.loading = false
	s.mu.Unlock()
}

// User returns the current user and whether one is signed in.
func (s *Service) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Service) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Service) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// Login authenticates and persists the session. It returns an *AuthError when
// the authenticator rejects the credentials or the session cannot be saved.
func (s *Service) Login(ctx context.Context, email, password string) (user models.User, err error) {
	s.setLoading(true)
	defer s.setLoading(false)
	defer func() { metrics.RecordAuth("login", err) }()

	u, err := s.authn.Login(ctx, email, password)
	if err != nil {
		s.log.InfoContext(ctx, "login rejected", "email", email, "error", err)
		return models.User{}, asAuthError("login", err, MsgLoginFailed)
	}

	if err := s.store.Save(ctx, *u); err != nil {
		s.log.ErrorContext(ctx, "saving session failed", "email", email, "error", err)
		return models.User{}, &AuthError{Op: "login", Message: MsgLoginFailed, Err: err}
	}

	s.mu.Lock()
	s.user = u
	s.mu.Unlock()

	s.log.InfoContext(ctx, "logged in", "user_id", u.ID, "email", u.Email)
	return *u, nil
}

// Register creates an account remotely. It does not sign the user in.
func (s *Service) Register(ctx context.Context, username, email, password string) (err error) {
	s.setLoading(true)
	defer s.setLoading(false)
	defer func() { metrics.RecordAuth("register", err) }()

	if s.registrar == nil {
		return &AuthError{Op: "register", Message: MsgRegisterFailed, Err: errors.New("no registrar configured")}
	}

	_, err = s.registrar.Register(ctx, models.RegisterRequest{Username: username, Email: email, Password: password})
	if err != nil {
		s.log.InfoContext(ctx, "registration rejected", "username", username, "email", email, "error", err)
		return asAuthError("register", err, MsgRegisterFailed)
	}

	s.log.InfoContext(ctx, "registered", "username", username, "email", email)
	return nil
}

// Logout forgets the current user and clears the persisted session. It cannot
// fail: remote and storage errors are logged and the in-memory user is
// cleared anyway.
func (s *Service) Logout(ctx context.Context) {
	if so, ok := s.authn.(SignOuter); ok {
		if err := so.Logout(ctx); err != nil {
			s.log.WarnContext(ctx, "remote logout failed", "error", err)
		}
	}
	if err := s.store.Clear(ctx); err != nil {
		s.log.WarnContext(ctx, "clearing session failed", "error", err)
	}

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	metrics.RecordAuth("logout", nil)
}

func asAuthError(op string, err error, fallback string) *AuthError {
	var ae *AuthError
	if errors.As(err, &ae) {
		out := *ae
		if out.Op == "" {
			out.Op = op
		}
		if out.Message == "" {
			out.Message = fallback
		}
		return &out
	}
	return &AuthError{Op: op, Message: fallback, Err: err}
}
