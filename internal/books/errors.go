package books

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by collection operations.
var (
	// ErrValidation is wrapped by every rejected input (empty field, bad year, unknown search field).
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when no record matches a title.
	ErrNotFound = errors.New("book not found")

	// ErrInvalidField is returned when a search field is neither title nor author.
	ErrInvalidField = fmt.Errorf("%w: search field must be title or author", ErrValidation)
)

func required(field string) error {
	return fmt.Errorf("%w: %s is required", ErrValidation, field)
}
