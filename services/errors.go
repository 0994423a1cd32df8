package services

import (
	"fmt"
)

// NotFoundError reports an unknown application id. No side effects were
// performed, nothing to compensate.
type NotFoundError struct {
	ApplicationID uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("application %d not found", e.ApplicationID)
}

// InvalidTransitionError reports a status transition the lifecycle does not
// allow. The application is left untouched.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid application status transition from %q to %q", e.From, e.To)
}

// PersistenceError reports a store write that failed before any external
// effect happened. Safe to retry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ExternalServiceError reports a failed or timed-out call to an external
// collaborator. Compensation has already been applied when this is returned.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s call failed: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// CompensationFailedError carries both the failure that triggered the
// compensation and the failure of the compensating write itself. The
// application is left in an inconsistent state that needs manual repair.
type CompensationFailedError struct {
	Original     error
	Compensation error
}

func (e *CompensationFailedError) Error() string {
	return fmt.Sprintf("compensation failed (original: %v; compensation: %v)", e.Original, e.Compensation)
}

// LinkPersistenceError is non-fatal: the interview is genuinely scheduled,
// only the meeting link could not be stored. The operator can re-attach it.
type LinkPersistenceError struct {
	MeetingLink string
	Err         error
}

func (e *LinkPersistenceError) Error() string {
	return fmt.Sprintf("interview scheduled but meeting link %q could not be saved: %v", e.MeetingLink, e.Err)
}

func (e *LinkPersistenceError) Unwrap() error { return e.Err }
