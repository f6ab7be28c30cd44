/*
errors.go - Centralized error types for the planning engine

PURPOSE:
  All error types in one place for consistency and discoverability. The
  calculators themselves are total functions and degrade to zero values
  rather than failing; these errors belong to the store and API layers,
  where a missing or duplicate entity is a real failure.

USAGE:
  if errors.Is(err, planning.ErrNotFound) {
      writeError(w, http.StatusNotFound, ...)
  }
*/
package planning

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNotFound is returned when a referenced entity doesn't exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateID is returned when creating an entity whose id exists.
	ErrDuplicateID = errors.New("duplicate entity id")

	// ErrInvalidCycle is returned for malformed cycles (end before start,
	// iteration without dates).
	ErrInvalidCycle = errors.New("invalid cycle: end before start")

	// ErrStoreClosed is returned when operating on a closed store.
	ErrStoreClosed = errors.New("store is closed")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// NotFoundError identifies which entity was missing.
type NotFoundError struct {
	Kind string // "team", "cycle", "allocation", ...
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// IsNotFound returns true if the error indicates a missing entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrDuplicateID) || errors.Is(err, ErrInvalidCycle)
}
