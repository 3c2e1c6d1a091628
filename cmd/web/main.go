// Command web serves the forum pages and the placeholder auth API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crucial707/forum-web/internal/auth"
	"github.com/crucial707/forum-web/internal/client"
	"github.com/crucial707/forum-web/internal/config"
	"github.com/crucial707/forum-web/internal/logging"
	"github.com/crucial707/forum-web/internal/session"
	"github.com/crucial707/forum-web/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	cfg = cfg.WithDefaultBackend(config.BackendCookie)
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stdout)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The cookie backend lives in each browser; every other backend is shared
	// and namespaced per browser.
	var shared session.Storage
	if cfg.Session.Backend != config.BackendCookie {
		backend, err := storage.Open(ctx, cfg)
		if err != nil {
			log.Error("open session backend", "backend", cfg.Session.Backend, "error", err)
			os.Exit(1)
		}
		defer backend.Close()
		shared = backend.Storage
	}

	remote := client.New(cfg.APIURL, cfg.Auth.RequestTimeout)
	var authn auth.Authenticator
	if cfg.Auth.LoginMode == config.LoginRemote {
		authn = remote
	}

	a, err := newApp(cfg, log, shared, authn, remote)
	if err != nil {
		log.Error("build app", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("web UI listening", "addr", srv.Addr, "session_backend", cfg.Session.Backend, "login_mode", cfg.Auth.LoginMode)
		var err error
		if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
			err = srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "error", err)
	}
}
