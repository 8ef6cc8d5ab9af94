package services

import (
	"errors"
	"fmt"
	"time"
)

// Error kinds surfaced to callers. Store-level failures are wrapped in
// ErrStorageFailure and the enclosing transaction is rolled back in full;
// a raw store error never crosses the service boundary.
var (
	ErrNotFound       = errors.New("word not found")
	ErrConflict       = errors.New("word already registered")
	ErrInvalidAction  = errors.New("unrecognized moderation action")
	ErrStorageFailure = errors.New("storage failure")
)

// LockedError is returned when a claim hits a word whose lockout has not
// elapsed. Remaining is how long until the word becomes available.
type LockedError struct {
	Remaining time.Duration
}

func (e *LockedError) Error() string {
	hours := int(e.Remaining.Hours())
	minutes := int(e.Remaining.Minutes()) % 60
	return fmt.Sprintf("word is currently locked, time remaining: %dh %dm", hours, minutes)
}

// ValidationError is returned when the content gate rejects a submission.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// storageErr wraps a store failure so callers can match ErrStorageFailure
// while the underlying cause stays in the chain for logs.
func storageErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageFailure, err)
}
