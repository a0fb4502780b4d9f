// Package host defines the narrow interface through which a building is
// written into a modeling document: level and family-type lookup, wall,
// opening and roof creation, wall read-back, and a single transaction
// around all of it.
//
// The interface is deliberately small. Everything that lives behind it
// (element storage, parameter bookkeeping, undo) belongs to the
// implementation; see package memhost for the in-memory one.
package host

import "errors"

// Sentinel errors. Implementations wrap them with context; callers match
// them with errors.Is.
var (
	// ErrNotFound is returned when a named level or family type does not
	// exist in the document.
	ErrNotFound = errors.New("not found")

	// ErrHostOperationFailed is returned when a create, activate or
	// transaction call is refused by the document.
	ErrHostOperationFailed = errors.New("host operation failed")
)
