package services

import (
	"fmt"
	"time"
)

// ValidationError means the caller's input is malformed; nothing was written.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError means a referenced resource does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// FutureEventError means feedback was attempted for an event whose resolved
// occurrence is not yet in the past. The resolved instant is carried for
// caller diagnostics.
type FutureEventError struct {
	Occurrence time.Time
}

func (e *FutureEventError) Error() string {
	return fmt.Sprintf("you can only give feedback for past events (event date %s)",
		e.Occurrence.Format(time.RFC3339))
}

// PermissionError means the caller lacks the required access. For the
// feedback gate it carries whether any registration was found and its status,
// so a student can see why they are ineligible.
type PermissionError struct {
	Msg                string
	RegistrationFound  bool
	RegistrationStatus string
}

func (e *PermissionError) Error() string { return e.Msg }
