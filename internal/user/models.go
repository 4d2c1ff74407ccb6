// Package user provides account lookup and registration against the mock
// user directory.
package user

import "errors"

// User account errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrDirectoryUnavailable = errors.New("user directory unavailable")
	ErrInvalidUsername    = errors.New("username must be at least 4 characters")
	ErrInvalidPassword    = errors.New("password must be at least 6 characters")
)

// Minimum credential lengths enforced at registration.
const (
	MinUsernameLength = 4
	MinPasswordLength = 6
)

// User is an account in the directory. The password never leaves this
// package: JSON marshaling excludes it.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}
