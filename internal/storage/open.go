package storage

import (
	"context"
	"fmt"

	"github.com/crucial707/forum-web/internal/config"
	"github.com/crucial707/forum-web/internal/db"
	"github.com/crucial707/forum-web/internal/session"
	"github.com/redis/go-redis/v9"
)

// Backend is an opened storage plus the function that releases it.
type Backend struct {
	Storage session.Storage
	Close   func() error
}

func noopClose() error { return nil }

// Open builds the backend named by cfg.Session.Backend. The cookie backend is
// per request and cannot be opened here.
func Open(ctx context.Context, cfg config.Config) (*Backend, error) {
	sc := cfg.Session
	switch sc.Backend {
	case config.BackendMemory:
		return &Backend{Storage: session.NewMemoryStorage(), Close: noopClose}, nil

	case config.BackendFile:
		dir := sc.Dir
		if dir == "" {
			dir = DefaultDir()
		}
		f, err := NewFile(dir)
		if err != nil {
			return nil, err
		}
		return &Backend{Storage: f, Close: noopClose}, nil

	case config.BackendSQLite:
		if err := db.RunSQLite(sc.SQLitePath); err != nil {
			return nil, fmt.Errorf("sqlite migrations: %w", err)
		}
		conn, err := db.OpenSQLite(sc.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return &Backend{Storage: NewSQL(conn, SQLite), Close: conn.Close}, nil

	case config.BackendPostgres:
		d := cfg.DB
		if err := db.Run(d.URL()); err != nil {
			return nil, fmt.Errorf("postgres migrations: %w", err)
		}
		conn, err := db.Connect(d.Host, d.Port, d.Name, d.User, d.Pass, d.MaxOpenConns, d.MaxIdleConns)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return &Backend{Storage: NewSQL(conn, Postgres), Close: conn.Close}, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     sc.RedisAddr,
			Password: sc.RedisPassword,
			DB:       sc.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		return &Backend{Storage: NewRedis(client, sc.RedisPrefix), Close: client.Close}, nil

	case config.BackendCookie:
		return nil, fmt.Errorf("cookie backend is bound to a request; use NewCookie")

	default:
		return nil, fmt.Errorf("unknown session backend %q", sc.Backend)
	}
}
