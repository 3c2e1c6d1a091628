// Package config loads CLI settings and opens the CLI's session.
package config

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crucial707/forum-web/internal/auth"
	"github.com/crucial707/forum-web/internal/client"
	"github.com/crucial707/forum-web/internal/config"
	"github.com/crucial707/forum-web/internal/session"
	"github.com/crucial707/forum-web/internal/storage"
)

// Overrides are set from persistent flags; empty fields keep the loaded value.
type Overrides struct {
	APIURL  string
	Backend string
}

// Load reads the shared configuration. The CLI keeps its session in a file
// unless SESSION_BACKEND says otherwise.
func Load(o Overrides) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if o.APIURL != "" {
		cfg.APIURL = o.APIURL
	}
	if o.Backend != "" {
		cfg.Session.Backend = o.Backend
	}
	cfg = cfg.WithDefaultBackend(config.BackendFile)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	if cfg.Session.Backend == config.BackendCookie {
		return config.Config{}, fmt.Errorf("session backend %q is only available to the web UI", config.BackendCookie)
	}
	return cfg, nil
}

// Session is the signed-in state of this CLI process.
type Session struct {
	Service *auth.Service
	close   func() error
}

func (s *Session) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open opens the configured backend and restores any saved session.
func Open(ctx context.Context, cfg config.Config, log *slog.Logger) (*Session, error) {
	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open session backend: %w", err)
	}

	remote := client.New(cfg.APIURL, cfg.Auth.RequestTimeout)
	var authn auth.Authenticator
	if cfg.Auth.LoginMode == config.LoginRemote {
		authn = remote
	}

	svc := auth.NewService(session.NewStore(backend.Storage, log), authn, remote, log)
	svc.Init(ctx)
	return &Session{Service: svc, close: backend.Close}, nil
}

// NewSession wraps an existing service, for callers that build their own storage.
func NewSession(svc *auth.Service) *Session {
	return &Session{Service: svc}
}
