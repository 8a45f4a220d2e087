package models

import (
	"errors"
	"fmt"
)

// Integrity errors: the request referenced state that has since moved on or
// was never there. Nothing is mutated; callers refresh and retry.
var (
	ErrTicketNotFound    = errors.New("ticket not found or already closed")
	ErrOpenBillMissing   = errors.New("no open bill for ticket")
	ErrDuplicateTicketNo = errors.New("ticket number already in use")
	ErrStatusConflict    = errors.New("bill status does not allow this transition")
	ErrBillNotFound      = errors.New("bill not found")
	ErrBillNotClosed     = errors.New("bill is not closed")
)

// ValidationError rejects an operation before any state is touched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func Invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// InconsistencyError reports a multi-step write that applied some steps and
// failed others, leaving the stores out of step. Needs operator attention.
type InconsistencyError struct {
	Applied string
	Failed  string
	Err     error
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("inconsistent write: applied %s, failed %s: %v", e.Applied, e.Failed, e.Err)
}

func (e *InconsistencyError) Unwrap() error { return e.Err }
