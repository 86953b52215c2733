package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound                  = errors.New("not found")
	ErrForbidden                 = errors.New("forbidden")
	ErrUnauthorized              = errors.New("unauthorized")
	ErrPaymentVerificationFailed = errors.New("payment verification failed")
	ErrGatewayUnavailable        = errors.New("payment gateway unavailable")
	ErrConflict                  = errors.New("conflict")
)

// ValidationError carries field-level detail back to the caller.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// InvalidTransitionError reports the state the entity was actually in,
// so concurrent losers and misbehaving clients can be diagnosed from logs.
type InvalidTransitionError struct {
	Current Status
	Action  Action
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: action %q not allowed from status %q", e.Action, e.Current)
}

// MissingFieldError means a transition payload lacked a required field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}
