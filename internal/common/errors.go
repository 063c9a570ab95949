// Package common defines shared constants and sentinel errors used across
// client and server layers of MediaVault. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Storage-level errors.
	ErrorNotFound           = errors.New("not found")
	ErrorAlreadyExists      = errors.New("already exists")
	ErrorStorageUnavailable = errors.New("storage unavailable")

	// Validation errors (bad name, traversal, invalid rename).
	ErrorValidation = errors.New("validation error")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)

// AccessTokenHeaderName is the HTTP header used to carry the bearer token
// on requests to the explorer API.
const AccessTokenHeaderName = "Authorization"
