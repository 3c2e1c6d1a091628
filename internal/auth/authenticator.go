package auth

import (
	"context"
	"time"

	"github.com/crucial707/forum-web/internal/models"
)

// Authenticator checks credentials and returns the signed-in user.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
}

// SignOuter is implemented by authenticators that hold server-side state to
// release on logout.
type SignOuter interface {
	Logout(ctx context.Context) error
}

// Registrar creates an account on the remote endpoint. It never signs in.
type Registrar interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
}

// Placeholder identity given to every locally synthesized user.
const (
	LocalUserID   = 1
	LocalUsername = "demo user"
)

// LocalAuthenticator accepts any credentials and synthesizes the user from the
// email. It stands in until a real login endpoint exists.
type LocalAuthenticator struct {
	Now func() time.Time
}

func (a LocalAuthenticator) Login(_ context.Context, email, _ string) (*models.User, error) {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	return SynthesizeUser(email, now()), nil
}

// SynthesizeUser builds the placeholder user for email at time ts.
func SynthesizeUser(email string, ts time.Time) *models.User {
	ts = ts.UTC()
	return &models.User{
		ID:        LocalUserID,
		Username:  LocalUsername,
		Email:     email,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}
