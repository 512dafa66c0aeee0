package client

import (
	"errors"
	"fmt"
)

// Sentinels the store and other callers branch on. APIError unwraps to one of
// these based on the server's error code.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation failed")
	ErrDuplicate   = errors.New("duplicate name")
	ErrPersistence = errors.New("persistence failure")
)

// APIError is a decoded error envelope from the CRM API.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %s (%d): %s", e.Code, e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Code {
	case "NOT_FOUND":
		return ErrNotFound
	case "VALIDATION_ERROR", "INVALID_ID", "BATCH_TOO_LARGE":
		return ErrValidation
	case "DUPLICATE_NAME":
		return ErrDuplicate
	default:
		return ErrPersistence
	}
}
