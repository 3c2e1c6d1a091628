package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/crucial707/forum-web/internal/models"
)

func sampleUser() models.User {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	return models.User{
		ID:        7,
		Username:  "alice",
		Email:     "alice@example.com",
		Bio:       "hello",
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func TestStore_SaveThenLoad(t *testing.T) {
	ctx := context.Background()
	st := NewStore(NewMemoryStorage(), nil)

	u := sampleUser()
	if err := st.Save(ctx, u); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := st.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got == nil {
		t.Fatal("Load returned no session after Save")
	}
	if *got != u {
		t.Errorf("round trip mismatch: got %+v, want %+v", *got, u)
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	st := NewStore(NewMemoryStorage(), nil)

	first := sampleUser()
	second := sampleUser()
	second.ID, second.Email = 8, "bob@example.com"

	_ = st.Save(ctx, first)
	_ = st.Save(ctx, second)

	got, _ := st.Load(ctx)
	if got == nil || got.Email != "bob@example.com" {
		t.Errorf("expected second user, got %+v", got)
	}
}

func TestStore_LoadEmpty(t *testing.T) {
	st := NewStore(NewMemoryStorage(), nil)
	got, err := st.Load(context.Background())
	if err != nil || got != nil {
		t.Errorf("Load on empty store: got %+v, %v", got, err)
	}
}

func TestStore_LoadGarbageRemovesEntry(t *testing.T) {
	garbage := []string{"not json", "{broken", "[]", "42", "null", `{"id":1}`, ""}
	for _, g := range garbage {
		t.Run(g, func(t *testing.T) {
			ctx := context.Background()
			mem := NewMemoryStorage()
			_ = mem.Set(ctx, Key, g)
			st := NewStore(mem, nil)

			got, err := st.Load(ctx)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got != nil {
				t.Fatalf("expected no session, got %+v", got)
			}
			if _, ok, _ := mem.Get(ctx, Key); ok {
				t.Error("corrupt entry was not removed")
			}

			// second load is still empty and still fine
			got, err = st.Load(ctx)
			if err != nil || got != nil {
				t.Errorf("second Load: %+v, %v", got, err)
			}
		})
	}
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := NewStore(NewMemoryStorage(), nil)

	if err := st.Clear(ctx); err != nil {
		t.Fatalf("Clear on empty store: %v", err)
	}
	_ = st.Save(ctx, sampleUser())
	if err := st.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := st.Clear(ctx); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
	if got, _ := st.Load(ctx); got != nil {
		t.Errorf("expected no session after Clear, got %+v", got)
	}
}

type failingStorage struct{ err error }

func (f failingStorage) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingStorage) Set(context.Context, string, string) error         { return f.err }
func (f failingStorage) Delete(context.Context, string) error              { return f.err }

func TestStore_BackendErrorsAreWrapped(t *testing.T) {
	boom := errors.New("disk on fire")
	st := NewStore(failingStorage{err: boom}, nil)
	ctx := context.Background()

	if err := st.Save(ctx, sampleUser()); !errors.Is(err, boom) {
		t.Errorf("Save error = %v, want wrapped %v", err, boom)
	}
	if _, err := st.Load(ctx); !errors.Is(err, boom) {
		t.Errorf("Load error = %v, want wrapped %v", err, boom)
	}
	if err := st.Clear(ctx); !errors.Is(err, boom) {
		t.Errorf("Clear error = %v, want wrapped %v", err, boom)
	}
}
