// Package common defines shared constants and sentinel errors used across
// tripkeeper layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Engine lifecycle errors. Initialization failures (driver load, corrupt
	// snapshot bytes, schema errors) are wrapped with this value.
	ErrEngineUnavailable = errors.New("engine unavailable")

	// Validation errors, returned before the engine is touched.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidImage is returned by imports whose bytes do not start with the
	// SQLite file header.
	ErrInvalidImage = errors.New("not a SQLite database image")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
