package domain

import (
	"errors"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Message: "quantity must be a positive integer"}
	if err.Error() != "quantity must be a positive integer" {
		t.Errorf("Error() = %q, want %q", err.Error(), "quantity must be a positive integer")
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	errs := []error{
		ErrAccountAlreadyExists,
		ErrAccountNotFound,
		ErrInstrumentNotFound,
		ErrInsufficientFunds,
		ErrNoSuchHolding,
		ErrInsufficientQuantity,
		ErrStorageConflict,
		ErrStorageUnavailable,
		ErrTransientFailure,
	}
	for i := 0; i < len(errs); i++ {
		for j := i + 1; j < len(errs); j++ {
			if errors.Is(errs[i], errs[j]) {
				t.Errorf("sentinel errors %d and %d should be distinct", i, j)
			}
		}
	}
}
