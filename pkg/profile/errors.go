package profile

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is returned when a profile document cannot be decoded.
	ErrParse = errors.New("parse profile")

	// ErrNotFound is matched by [*NotFoundError].
	ErrNotFound = errors.New("entry not found")

	// ErrDuplicateEntry is matched by [*DuplicateEntryError].
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrUnknownCategory is returned for category names with no [Descriptor].
	ErrUnknownCategory = errors.New("unknown category")

	// ErrInvalidRequest is returned for malformed [EditRequest]s.
	ErrInvalidRequest = errors.New("invalid edit request")
)

// NotFoundError reports that no entry with the given name exists in a category.
type NotFoundError struct {
	Category Category
	Name     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Category, e.Name, ErrNotFound)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DuplicateEntryError reports that an edit would leave two entries with the
// same name in one category.
type DuplicateEntryError struct {
	Category Category
	Name     string
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Category, e.Name, ErrDuplicateEntry)
}

func (e *DuplicateEntryError) Is(target error) bool {
	return target == ErrDuplicateEntry
}
