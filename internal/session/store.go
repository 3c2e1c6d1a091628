// Package session persists the single signed-in user of a client.
//
// The user lives under one fixed key of a Storage backend as a JSON document.
// Anything under that key that does not decode to a user is treated as no
// session and removed.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/crucial707/forum-web/internal/metrics"
	"github.com/crucial707/forum-web/internal/models"
)

// Key is the storage key holding the serialized user.
const Key = "user"

// Store reads and writes the session user through a Storage backend.
type Store struct {
	storage Storage
	log     *slog.Logger
}

// NewStore returns a Store over storage. A nil logger falls back to slog.Default().
func NewStore(storage Storage, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{storage: storage, log: log}
}

// Save writes user under Key, replacing any previous entry.
func (s *Store) Save(ctx context.Context, user models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	if err := s.storage.Set(ctx, Key, string(data)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load returns the stored user, or nil when there is no session. A corrupt
// entry is deleted and reported as no session. Only backend failures are
// returned as errors.
func (s *Store) Load(ctx context.Context) (*models.User, error) {
	raw, ok, err := s.storage.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return nil, nil
	}

	user, err := decodeUser(raw)
	if err != nil {
		s.log.WarnContext(ctx, "discarding corrupt session entry", "error", err)
		metrics.IncSessionRepairs()
		if delErr := s.storage.Delete(ctx, Key); delErr != nil {
			return nil, fmt.Errorf("remove corrupt session: %w", delErr)
		}
		return nil, nil
	}
	return user, nil
}

// Clear removes the stored entry. Clearing an empty store is not an error.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.storage.Delete(ctx, Key); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func decodeUser(raw string) (*models.User, error) {
	data := bytes.TrimSpace([]byte(raw))
	if len(data) == 0 || data[0] != '{' {
		return nil, errors.New("not a json object")
	}
	var u models.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, err
	}
	if u.Email == "" {
		return nil, errors.New("user has no email")
	}
	return &u, nil
}
