package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/crucial707/forum-web/internal/models"
	"github.com/crucial707/forum-web/internal/session"
)

type fakeRegistrar struct {
	calls int
	last  models.RegisterRequest
	err   error
}

func (f *fakeRegistrar) Register(_ context.Context, req models.RegisterRequest) (*models.User, error) {
	f.calls++
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{ID: 42, Username: req.Username, Email: req.Email}, nil
}

type brokenStorage struct {
	*session.MemoryStorage
	setErr, delErr error
}

func (b brokenStorage) Set(ctx context.Context, k, v string) error {
	if b.setErr != nil {
		return b.setErr
	}
	return b.MemoryStorage.Set(ctx, k, v)
}

func (b brokenStorage) Delete(ctx context.Context, k string) error {
	if b.delErr != nil {
		return b.delErr
	}
	return b.MemoryStorage.Delete(ctx, k)
}

func newService(t *testing.T, st session.Storage, reg Registrar) (*Service, *session.Store) {
	t.Helper()
	store := session.NewStore(st, nil)
	fixed := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	svc := NewService(store, LocalAuthenticator{Now: func() time.Time { return fixed }}, reg, nil)
	return svc, store
}

func TestService_InitWithoutSession(t *testing.T) {
	svc, _ := newService(t, session.NewMemoryStorage(), nil)
	if !svc.Loading() {
		t.Fatal("service should be loading before Init")
	}
	svc.Init(context.Background())
	if svc.Loading() {
		t.Error("Loading should be false after Init")
	}
	if _, ok := svc.User(); ok {
		t.Error("expected no user")
	}
}

func TestService_InitRestoresSession(t *testing.T) {
	ctx := context.Background()
	mem := session.NewMemoryStorage()
	_ = session.NewStore(mem, nil).Save(ctx, models.User{ID: 3, Username: "carol", Email: "carol@example.com"})

	svc, _ := newService(t, mem, nil)
	svc.Init(ctx)

	u, ok := svc.User()
	if !ok || u.Email != "carol@example.com" {
		t.Errorf("expected restored user, got %+v ok=%v", u, ok)
	}
}

func TestService_InitWithCorruptSession(t *testing.T) {
	ctx := context.Background()
	mem := session.NewMemoryStorage()
	_ = mem.Set(ctx, session.Key, "}{")

	svc, _ := newService(t, mem, nil)
	svc.Init(ctx)

	if _, ok := svc.User(); ok {
		t.Error("corrupt session should not produce a user")
	}
	if svc.Loading() {
		t.Error("Loading should be false after Init")
	}
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t, session.NewMemoryStorage(), nil)
	svc.Init(ctx)

	u, err := svc.Login(ctx, "a@b.com", "x")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.Email != "a@b.com" || u.ID != LocalUserID || u.Username != LocalUsername {
		t.Errorf("unexpected user: %+v", u)
	}
	if svc.Loading() {
		t.Error("Loading should be false after Login")
	}

	cur, ok := svc.User()
	if !ok || cur.Email != "a@b.com" {
		t.Errorf("current user not set: %+v", cur)
	}

	persisted, err := store.Load(ctx)
	if err != nil || persisted == nil || persisted.Email != "a@b.com" {
		t.Errorf("session not persisted: %+v, %v", persisted, err)
	}
}

func TestService_LoginSaveFailure(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("read-only filesystem")
	svc, _ := newService(t, brokenStorage{MemoryStorage: session.NewMemoryStorage(), setErr: boom}, nil)
	svc.Init(ctx)

	_, err := svc.Login(ctx, "a@b.com", "x")
	var ae *AuthError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *AuthError, got %T %v", err, err)
	}
	if ae.Op != "login" || ae.Message != MsgLoginFailed || !errors.Is(err, boom) {
		t.Errorf("unexpected error: %+v", ae)
	}
	if _, ok := svc.User(); ok {
		t.Error("user must not be set when the session was not saved")
	}
}

type rejectingAuthenticator struct{ err error }

func (r rejectingAuthenticator) Login(context.Context, string, string) (*models.User, error) {
	return nil, r.err
}

func TestService_LoginRejected(t *testing.T) {
	ctx := context.Background()
	store := session.NewStore(session.NewMemoryStorage(), nil)
	remote := &AuthError{Message: "invalid credentials", Status: 401}
	svc := NewService(store, rejectingAuthenticator{err: remote}, nil, nil)
	svc.Init(ctx)

	_, err := svc.Login(ctx, "a@b.com", "bad")
	if err == nil || err.Error() != "invalid credentials" {
		t.Fatalf("expected remote message, got %v", err)
	}
	if got, _ := store.Load(ctx); got != nil {
		t.Error("no session should be stored")
	}
}

func TestService_RegisterDoesNotSignIn(t *testing.T) {
	ctx := context.Background()
	reg := &fakeRegistrar{}
	svc, store := newService(t, session.NewMemoryStorage(), reg)
	svc.Init(ctx)

	if err := svc.Register(ctx, "alice", "alice@example.com", "secret1"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.calls != 1 || reg.last.Username != "alice" || reg.last.Password != "secret1" {
		t.Errorf("unexpected registrar call: %d %+v", reg.calls, reg.last)
	}
	if _, ok := svc.User(); ok {
		t.Error("register must not sign in")
	}
	if got, _ := store.Load(ctx); got != nil {
		t.Error("register must not persist a session")
	}
	if svc.Loading() {
		t.Error("Loading should be false after Register")
	}
}

func TestService_RegisterFailure(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"server message", &AuthError{Message: "email is already registered", Status: 409}, "email is already registered"},
		{"no message", &AuthError{Status: 500}, MsgRegisterFailed},
		{"transport error", errors.New("dial tcp: refused"), MsgRegisterFailed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, store := newService(t, session.NewMemoryStorage(), &fakeRegistrar{err: tc.err})
			svc.Init(ctx)

			err := svc.Register(ctx, "alice", "test@example.com", "secret1")
			var ae *AuthError
			if !errors.As(err, &ae) {
				t.Fatalf("expected *AuthError, got %T %v", err, err)
			}
			if ae.Message != tc.wantMsg || ae.Op != "register" {
				t.Errorf("got %+v, want message %q", ae, tc.wantMsg)
			}
			if got, _ := store.Load(ctx); got != nil {
				t.Error("failed register must not create a session")
			}
		})
	}
}

func TestService_RegisterWithoutRegistrar(t *testing.T) {
	svc, _ := newService(t, session.NewMemoryStorage(), nil)
	if err := svc.Register(context.Background(), "alice", "a@b.com", "secret1"); err == nil {
		t.Error("expected error without registrar")
	}
}

func TestService_Logout(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t, session.NewMemoryStorage(), nil)
	svc.Init(ctx)
	_, _ = svc.Login(ctx, "a@b.com", "x")

	svc.Logout(ctx)
	if _, ok := svc.User(); ok {
		t.Error("user should be cleared")
	}
	if got, _ := store.Load(ctx); got != nil {
		t.Error("session should be cleared")
	}
}

func TestService_LogoutWithoutSession(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t, session.NewMemoryStorage(), nil)
	svc.Init(ctx)

	svc.Logout(ctx)
	got, err := store.Load(ctx)
	if err != nil || got != nil {
		t.Errorf("Load after Logout: %+v, %v", got, err)
	}
}

func TestService_LogoutStorageFailureStillClearsUser(t *testing.T) {
	ctx := context.Background()
	mem := session.NewMemoryStorage()
	svc, _ := newService(t, brokenStorage{MemoryStorage: mem, delErr: errors.New("nope")}, nil)
	svc.Init(ctx)
	_, _ = svc.Login(ctx, "a@b.com", "x")

	svc.Logout(ctx)
	if _, ok := svc.User(); ok {
		t.Error("in-memory user must be cleared even if storage fails")
	}
}

type remoteSession struct {
	LocalAuthenticator
	logouts int
	err     error
}

func (r *remoteSession) Logout(context.Context) error {
	r.logouts++
	return r.err
}

func TestService_LogoutCallsRemote(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ok", nil},
		{"remote failure", errors.New("connection refused")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			remote := &remoteSession{err: tc.err}
			store := session.NewStore(session.NewMemoryStorage(), nil)
			svc := NewService(store, remote, nil, nil)
			svc.Init(ctx)
			_, _ = svc.Login(ctx, "a@b.com", "x")

			svc.Logout(ctx)
			if remote.logouts != 1 {
				t.Errorf("remote logout called %d times", remote.logouts)
			}
			if _, ok := svc.User(); ok {
				t.Error("user should be cleared")
			}
			if got, _ := store.Load(ctx); got != nil {
				t.Error("session should be cleared")
			}
		})
	}
}

func TestService_RegisterFailureLeavesCallerErrorAlone(t *testing.T) {
	ctx := context.Background()
	remote := &AuthError{Status: 500}
	svc, _ := newService(t, session.NewMemoryStorage(), &fakeRegistrar{err: remote})
	svc.Init(ctx)

	err := svc.Register(ctx, "alice", "a@b.com", "secret1")
	var ae *AuthError
	if !errors.As(err, &ae) || ae.Message != MsgRegisterFailed || ae.Op != "register" || ae.Status != 500 {
		t.Fatalf("unexpected error: %v", err)
	}
	if remote.Op != "" || remote.Message != "" {
		t.Errorf("original error was modified: %+v", remote)
	}
}

func TestMessage(t *testing.T) {
	if got := Message(&AuthError{Message: "m"}, "fb"); got != "m" {
		t.Errorf("got %q", got)
	}
	if got := Message(nil, "fb"); got != "fb" {
		t.Errorf("got %q", got)
	}
	if got := Message(errors.New("plain"), "fb"); got != "plain" {
		t.Errorf("got %q", got)
	}
}
