package domain

import "errors"

// Sentinel errors for the catalog domain. Use errors.Is() to check these.
var (
	// ErrNameNotFound indicates the requested name does not exist (or is a
	// custom name belonging to a different household).
	ErrNameNotFound = errors.New("name not found")

	// ErrSetNotFound indicates the requested name set does not exist.
	ErrSetNotFound = errors.New("name set not found")

	// ErrDuplicateName indicates a custom name already exists in the household.
	ErrDuplicateName = errors.New("name already exists in household")

	// ErrInvalidName indicates a custom name failed basic validation.
	ErrInvalidName = errors.New("invalid name")
)
