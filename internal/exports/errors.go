package exports

import "errors"

var (
	// ErrNotFound indicates an export record was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden indicates the record belongs to another owner.
	ErrForbidden = errors.New("forbidden")

	// ErrArchiveDisabled is returned when no object store is configured.
	ErrArchiveDisabled = errors.New("export archive disabled")
)
