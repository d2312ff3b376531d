package domain

import "errors"

// Sentinel errors shared across the service. Callers classify wrapped
// errors with errors.Is.
var (
	// ErrValidation means the input was rejected before any state change.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound means the referenced entity no longer exists, usually
	// because a rollover cleared it.
	ErrNotFound = errors.New("not found")

	// ErrGenerationUnavailable means an external generation capability
	// failed or timed out.
	ErrGenerationUnavailable = errors.New("generation unavailable")

	// ErrPersistence means the ledger document could not be written; the
	// prior durable state is intact.
	ErrPersistence = errors.New("persistence failure")

	// ErrNoCurrentWord means the operation requires an active word but
	// none is set.
	ErrNoCurrentWord = errors.New("no current word")
)
