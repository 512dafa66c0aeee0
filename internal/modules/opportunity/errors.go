package opportunity

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput  = errors.New("invalid naming input")
	ErrDuplicateName = errors.New("duplicate opportunity name")
	ErrNotFound      = errors.New("opportunity not found")
	ErrOrgNotFound   = errors.New("organization not found")
	ErrBatchTooLarge = fmt.Errorf("batch exceeds %d principals", MaxBatchSize)
)

// ValidationError carries field-level messages back to the form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation error"
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
