package domain

import "errors"

// Sentinel errors for the core data model. Services wrap these with
// fmt.Errorf("%w: ...") so callers can match with errors.Is.
var (
	// ErrNotFound indicates a missing deck, card, attachment or session.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName indicates a deck name collision.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrValidation indicates malformed or inconsistent data
	// (bad input, corrupt backup archive, broken references).
	ErrValidation = errors.New("validation failed")

	// ErrInvalidState indicates a study session operation performed
	// in the wrong state (e.g. recording before the session started).
	ErrInvalidState = errors.New("invalid state")
)
