package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound         = errors.New("resource not found")
	ErrScheduleNotFound = fmt.Errorf("%w: study schedule", ErrNotFound)
	ErrResultNotFound   = fmt.Errorf("%w: practice result", ErrNotFound)
	ErrSessionNotFound  = fmt.Errorf("%w: active session", ErrNotFound)

	// Validation errors
	ErrInvalidDateRange    = errors.New("start date must not be after end date")
	ErrInvalidDate         = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidReminderHour = errors.New("reminder hour must be in [0,23]")
	ErrInvalidSessionMode  = errors.New("invalid session mode")

	// Notification errors
	ErrNoNotifyPermission = errors.New("notification permission not granted")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
