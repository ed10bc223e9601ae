package domain

import "fmt"

// ResultNotFoundError indicates that no game result with the given GUID exists.
type ResultNotFoundError struct {
	GUID string
}

// Error implements the error interface.
func (e *ResultNotFoundError) Error() string {
	return fmt.Sprintf("game result not found: guid=%q", e.GUID)
}

// InvalidResultError indicates that a game result violates its invariants.
type InvalidResultError struct {
	Reason string
}

// Error implements the error interface.
func (e *InvalidResultError) Error() string {
	return "invalid game result: " + e.Reason
}
