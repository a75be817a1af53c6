package attendance

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned when a mutating operation has no caller
// identity.
var ErrUnauthenticated = errors.New("caller is not authenticated")

// ValidationError reports a missing, malformed, or temporally invalid
// field. The caller corrects the input and retries.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictError reports an operation against a session in the wrong state:
// checking in a child with an open session, or checking out a session that
// is already closed.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

// NotFoundError reports a missing session or child.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// IntegrityError reports more than one open session for a child. The data
// must be corrected via EditSession; the manager never picks one silently.
type IntegrityError struct {
	ChildID string
	Count   int
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("child %s has %d open sessions; expected at most one", e.ChildID, e.Count)
}

// StoreUnavailableError wraps a failure to reach the session store. No
// automatic retry happens here; call sites decide.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("session store unavailable during %s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

// IsIntegrity reports whether err is an IntegrityError.
func IsIntegrity(err error) bool {
	var ie *IntegrityError
	return errors.As(err, &ie)
}
