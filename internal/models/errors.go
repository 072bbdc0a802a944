package models

import "errors"

// Sentinel errors shared across the core. Packages wrap these with %w and
// the HTTP layer maps them to status codes in one place.
var (
	// ErrUnauthorized means the actor's role may not perform the action.
	ErrUnauthorized = errors.New("not allowed for this role")

	// ErrInvalidTransition means the action is not legal from the
	// record's current status.
	ErrInvalidTransition = errors.New("invalid payment status transition")

	// ErrNotFound means the referenced member, period or config does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation means the input was malformed (unsupported deep-link
	// app, missing method, oversized receipt, ...).
	ErrValidation = errors.New("invalid input")

	// ErrStorage means the durable store or blob store failed; the
	// attempted transition was not committed.
	ErrStorage = errors.New("storage failure")
)
