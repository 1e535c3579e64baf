package order

import (
	"errors"
	"fmt"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError carries the rejected edge so that callers can report
// both ends.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot move order from %s to %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ValidateTransition is the single source of truth for legal status changes.
//
// Returns:
//   - a ValueIsInvalidError if either status is outside the enum
//   - an InvalidTransitionError if (current, requested) is not an edge
//   - nil otherwise
func ValidateTransition(current, requested Status) error {
	if err := errors.Join(current.Validate(), requested.Validate()); err != nil {
		return err
	}
	if !current.CanTransitionTo(requested) {
		return NewInvalidTransitionError(current, requested)
	}
	return nil
}
