package service

import "errors"

// Error kinds.  Every error returned by the capacity manager for a
// rejected request unwraps to exactly one of these; handlers map them to
// HTTP statuses with errors.Is and render err.Error() to the client.
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidOperation    = errors.New("invalid operation")
	ErrCapacityExceeded    = errors.New("capacity exceeded")
	ErrDuplicateMembership = errors.New("duplicate membership")
	ErrNotAuthorized       = errors.New("not authorized")
)

// opError is a user-facing message tagged with its kind.
type opError struct {
	kind error
	msg  string
}

func (e *opError) Error() string { return e.msg }
func (e *opError) Unwrap() error { return e.kind }

func newOpError(kind error, msg string) error { return &opError{kind: kind, msg: msg} }

// Concrete outcomes.
var (
	ErrSessionNotJoinable  = newOpError(ErrNotFound, "session not found, inactive, or already in the past")
	ErrSelfJoin            = newOpError(ErrInvalidOperation, "you cannot join your own session")
	ErrSessionFull         = newOpError(ErrCapacityExceeded, "session is full")
	ErrAlreadyJoined       = newOpError(ErrDuplicateMembership, "already joined this session")
	ErrCancelReason        = newOpError(ErrInvalidOperation, "cancellation reason is required")
	ErrCancelNotFound      = newOpError(ErrNotFound, "session not found or not authorized")
	ErrDeleteReason        = newOpError(ErrInvalidOperation, "deletion reason is required")
	ErrSessionNotFound     = newOpError(ErrNotFound, "session not found")
	ErrDeleteNotAuthorized = newOpError(ErrNotAuthorized, "not authorized to delete this session")
	ErrMissingFields       = newOpError(ErrInvalidOperation, "all required fields must be provided")
	ErrUnknownSport        = newOpError(ErrInvalidOperation, "unknown sport")
)

// invalidf builds a field-specific InvalidOperation error.
func invalidf(msg string) error { return newOpError(ErrInvalidOperation, msg) }
