package models

import "errors"

// Domain error taxonomy. Services wrap these sentinels with context via
// fmt.Errorf("...: %w", err); the HTTP layer maps them to status codes.
var (
	// ErrValidation marks empty or malformed input.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a dangling reference to a user, restaurant, table or dish.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a duplicate open table, a restaurant join-code
	// mismatch, or mutation of a closed table.
	ErrConflict = errors.New("conflict")

	// ErrInvalidReference marks a cross-restaurant dish attachment.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrUnauthorized marks a failed login.
	ErrUnauthorized = errors.New("unauthorized")
)
