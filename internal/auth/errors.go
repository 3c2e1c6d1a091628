package auth

import "errors"

// Fallback messages used when a failure carries no message of its own.
const (
	MsgLoginFailed    = "login failed, please try again later"
	MsgRegisterFailed = "registration failed"
)

// AuthError is an operation-level failure shown to the user as one banner.
// Message is safe to display; Err keeps the underlying cause for logs.
type AuthError struct {
	Op      string
	Message string
	// Status is the HTTP status returned by a remote endpoint, 0 when none.
	Status int
	Err    error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Message returns the user-facing text of err, or fallback if err carries none.
func Message(err error, fallback string) string {
	var ae *AuthError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
