// Package validation checks login and registration form input before anything
// is sent to the auth service. Every function here is pure.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MinPasswordLength = 6
	MinUsernameLength = 3
)

// Error messages shown next to the offending field.
const (
	MsgEmailRequired      = "email is required"
	MsgEmailInvalid       = "enter a valid email address"
	MsgPasswordRequired   = "password is required"
	MsgPasswordTooShort   = "password must be at least 6 characters"
	MsgConfirmRequired    = "please confirm your password"
	MsgPasswordsDontMatch = "passwords do not match"
	MsgUsernameRequired   = "username is required"
	MsgUsernameTooShort   = "username must be at least 3 characters"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// LoginValues holds the raw login form input.
type LoginValues struct {
	Email    string
	Password string
}

// LoginErrors holds one message per login field; empty means the field is fine.
type LoginErrors struct {
	Email    string
	Password string
}

// Valid reports whether no field has an error.
func (e LoginErrors) Valid() bool {
	return e == LoginErrors{}
}

// Fields returns the non-empty errors keyed by form field name.
func (e LoginErrors) Fields() map[string]string {
	fields := make(map[string]string)
	put(fields, "email", e.Email)
	put(fields, "password", e.Password)
	return fields
}

// RegisterValues holds the raw registration form input.
type RegisterValues struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// RegisterErrors holds one message per registration field.
type RegisterErrors struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Valid reports whether no field has an error.
func (e RegisterErrors) Valid() bool {
	return e == RegisterErrors{}
}

// Fields returns the non-empty errors keyed by form field name.
func (e RegisterErrors) Fields() map[string]string {
	fields := make(map[string]string)
	put(fields, "username", e.Username)
	put(fields, "email", e.Email)
	put(fields, "password", e.Password)
	put(fields, "confirmPassword", e.ConfirmPassword)
	return fields
}

func put(fields map[string]string, name, msg string) {
	if msg != "" {
		fields[name] = msg
	}
}

// IsEmail reports whether s has the local@domain.tld shape.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Email returns the error for an email field, or "".
func Email(s string) string {
	if strings.TrimSpace(s) == "" {
		return MsgEmailRequired
	}
	if !IsEmail(s) {
		return MsgEmailInvalid
	}
	return ""
}

// NewPassword returns the error for a password being chosen at registration.
func NewPassword(s string) string {
	if s == "" {
		return MsgPasswordRequired
	}
	if utf8.RuneCountInString(s) < MinPasswordLength {
		return MsgPasswordTooShort
	}
	return ""
}

// Username returns the error for a registration username, or "". Lengths are
// counted in characters after trimming, matching what the form submits.
func Username(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return MsgUsernameRequired
	}
	if utf8.RuneCountInString(s) < MinUsernameLength {
		return MsgUsernameTooShort
	}
	return ""
}

// Login validates the login form. The password only has to be present.
func Login(v LoginValues) LoginErrors {
	var errs LoginErrors
	errs.Email = Email(v.Email)
	if v.Password == "" {
		errs.Password = MsgPasswordRequired
	}
	return errs
}

// Register validates the registration form.
func Register(v RegisterValues) RegisterErrors {
	var errs RegisterErrors
	errs.Username = Username(v.Username)
	errs.Email = Email(v.Email)
	errs.Password = NewPassword(v.Password)
	switch {
	case v.ConfirmPassword == "":
		errs.ConfirmPassword = MsgConfirmRequired
	case v.ConfirmPassword != v.Password:
		errs.ConfirmPassword = MsgPasswordsDontMatch
	}
	return errs
}
