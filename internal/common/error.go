// Package common defines shared sentinel errors used across service and
// transport layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Input validation errors (malformed or missing request data).
	ErrValidation = errors.New("validation error")

	// Uniqueness conflicts (username or email already taken).
	ErrAlreadyExists = errors.New("already exists")

	// Repository-level lookup errors.
	ErrNotFound = errors.New("not found")

	// Authentication errors (bad credentials, invalid or stale tokens).
	ErrUnauthorized = errors.New("unauthorized")

	// Internal failures (persistence, token signing).
	ErrInternal = errors.New("internal error")
)
