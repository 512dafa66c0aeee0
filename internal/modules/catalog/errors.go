package catalog

import "errors"

var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrPrincipalNotFound    = errors.New("principal not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrValidation           = errors.New("validation error")
)
