package store

import "errors"

// Domain-specific errors for project database access.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrUnitNotFound is returned when the requested unit id does not
	// exist in the project database.
	ErrUnitNotFound = errors.New("store: unit not found")
)
