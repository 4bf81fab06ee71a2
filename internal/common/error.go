// Package common defines shared constants and sentinel errors used across
// client and server layers of SchoolDesk. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrorUnavailable  = errors.New("server unavailable")

	// Validation errors.
	ErrorInvalidCredentials = errors.New("invalid email or password")
	ErrorInvalidRole        = errors.New("invalid role")
	ErrorInvalidEmail       = errors.New("invalid email")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenRevoked = errors.New("token revoked")
)
