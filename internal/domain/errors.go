package domain

import "errors"

// Sentinel errors for domain-level error handling.
// The handler layer maps these to HTTP status codes.
var (
	ErrAccountAlreadyExists = errors.New("account_already_exists")
	ErrAccountNotFound      = errors.New("account_not_found")
	ErrInstrumentNotFound   = errors.New("instrument_not_found")
	ErrInsufficientFunds    = errors.New("insufficient_funds")
	ErrNoSuchHolding        = errors.New("no_such_holding")
	ErrInsufficientQuantity = errors.New("insufficient_quantity")
	ErrStorageConflict      = errors.New("storage_conflict")
	ErrStorageUnavailable   = errors.New("storage_unavailable")
	ErrTransientFailure     = errors.New("transient_failure")
)

// ValidationError represents a request validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
