package service

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed operation with a stable machine-readable
// kind. Handlers map kinds to HTTP status codes; messages are for humans.
type ErrorKind string

const (
	KindValidation            ErrorKind = "VALIDATION"
	KindPermissionDenied      ErrorKind = "PERMISSION_DENIED"
	KindNotFound              ErrorKind = "NOT_FOUND"
	KindInsufficientInventory ErrorKind = "INSUFFICIENT_INVENTORY"
	KindConflict              ErrorKind = "CONFLICT"
)

// Error is the taxonomy error returned by core operations. A failure inside
// an atomic unit surfaces exactly one of these after a full rollback.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Errorf builds a taxonomy error.
func Errorf(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the taxonomy kind from err, or "" for untyped errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// ErrInvalidCredentials is returned by login; it deliberately does not say
// whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")
