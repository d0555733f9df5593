package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrSessionRevoked     = errors.New("session revoked")
	ErrInvalidSession     = errors.New("invalid session")
)

// Field validation failures. The code suffix names the offending field.
var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrInvalidPassword = errors.New("invalid_password")
	ErrInvalidAge      = errors.New("invalid_age")
	ErrInvalidGender   = errors.New("invalid_gender")
	ErrInvalidImage    = errors.New("invalid_image")
)
