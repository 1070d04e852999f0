// Package common defines sentinel errors shared across the Commently
// service layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
	ErrorValidation    = errors.New("validation error")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Signup input errors. The messages are part of the API contract
	// and are returned to the client verbatim.
	ErrorMissingFields    = errors.New("provide both fields")
	ErrorInvalidEmail     = errors.New("invalid email")
	ErrorPasswordTooShort = errors.New("password too short")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
