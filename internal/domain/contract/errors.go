package contract

import (
	"errors"
	"fmt"
)

var (
	// ErrContractNotFound is returned when a contract is not found
	ErrContractNotFound = errors.New("contract not found")
)

// ValidationError represents an error that occurs during contract validation
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrContractNotFound)
}
