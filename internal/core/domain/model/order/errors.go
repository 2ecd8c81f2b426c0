package order

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification with errors.Is.
var (
	// ErrInvalidTransition indicates a requested status change violates
	// the transition policy.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrUnsupportedAction indicates an unknown lifecycle action name.
	// This is treated as a client/programming error.
	ErrUnsupportedAction = errors.New("unsupported action")

	// ErrCancellationNotAllowed indicates the acting party is not
	// permitted to cancel the order from its current status.
	ErrCancellationNotAllowed = errors.New("cancellation not allowed")

	// ErrValidationFailed indicates the order snapshot is structurally
	// invalid. The wrapping ValidationError carries the field errors.
	ErrValidationFailed = errors.New("validation failed")
)

// InvalidTransitionError reports an illegal status transition attempt,
// carrying the attempted from->to pair so callers can re-fetch current
// state and present allowed next actions.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// UnsupportedActionError reports an unrecognized lifecycle action name.
type UnsupportedActionError struct {
	Action string
}

func (e *UnsupportedActionError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnsupportedAction, e.Action)
}

func (e *UnsupportedActionError) Unwrap() error {
	return ErrUnsupportedAction
}

// ValidationError aggregates structural field errors for an order snapshot.
// It is the non-throwing validation result surfaced to callers as a
// 4xx-style response with the full list of field errors.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidationFailed, strings.Join(e.Errors, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
