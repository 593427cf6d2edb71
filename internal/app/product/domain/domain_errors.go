package domain

import "errors"

// Domain errors as sentinel values
var (
	// Product errors
	ErrProductNotFound = errors.New("product not found")
	ErrEmptyName       = errors.New("product name cannot be empty")
	ErrInvalidCategory = errors.New("product category cannot be empty")

	// Tag errors
	ErrInvalidTag  = errors.New("invalid tag")
	ErrTagNotFound = errors.New("tag not found")

	// Attribute errors
	ErrEmptyAttributeKey  = errors.New("attribute key cannot be empty")
	ErrAttributeNotFound  = errors.New("attribute not found")
	ErrDuplicateAttribute = errors.New("duplicate attribute")

	// Status errors
	ErrAlreadyActive        = errors.New("product is already active")
	ErrAlreadyInactive      = errors.New("product is already inactive")
	ErrAlreadyArchived      = errors.New("product is already archived")
	ErrCannotModifyArchived = errors.New("cannot modify archived product")
)
