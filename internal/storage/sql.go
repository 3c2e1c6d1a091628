package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Dialect selects placeholder syntax for the key/value queries.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

type queries struct {
	get, set, del string
}

var dialectQueries = map[Dialect]queries{
	Postgres: {
		get: `SELECT value FROM session_entries WHERE key = $1`,
		set: `INSERT INTO session_entries (key, value, updated_at) VALUES ($1, $2, now())
			ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		del: `DELETE FROM session_entries WHERE key = $1`,
	},
	SQLite: {
		get: `SELECT value FROM session_entries WHERE key = ?`,
		set: `INSERT INTO session_entries (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		del: `DELETE FROM session_entries WHERE key = ?`,
	},
}

// SQL stores entries in the session_entries table created by the db migrations.
type SQL struct {
	db *sql.DB
	q  queries
}

func NewSQL(db *sql.DB, d Dialect) *SQL {
	return &SQL{db: db, q: dialectQueries[d]}
}

func (s *SQL) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.q.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get session entry[%s]: %w", key, err)
	}
	return value, true, nil
}

func (s *SQL) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, s.q.set, key, value); err != nil {
		return fmt.Errorf("failed to set session entry[%s]: %w", key, err)
	}
	return nil
}

func (s *SQL) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.q.del, key); err != nil {
		return fmt.Errorf("failed to delete session entry[%s]: %w", key, err)
	}
	return nil
}
