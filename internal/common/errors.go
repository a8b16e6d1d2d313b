// Package common defines shared constants and sentinel errors used across
// the layers of the identity service. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Validation errors, rejected before any storage access.
	ErrValidation = errors.New("required field missing")

	// Pre-create uniqueness violations.
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password so responses cannot be used to probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrProvider marks a failure reported by the external identity provider.
	ErrProvider = errors.New("identity provider error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
