// Package apperr defines the application error taxonomy.
// Every failure surfaced to a caller carries a stable kind plus a
// human-readable message; internal causes stay wrapped and are never
// serialized outside diagnostic logs.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation: malformed or missing required field.
	KindValidation
	// KindUnsupportedMedia: disallowed file content type.
	KindUnsupportedMedia
	// KindNotFound: target record or identity absent.
	KindNotFound
	// KindAuthMismatch: credential check failed.
	KindAuthMismatch
	// KindPolicyViolation: password reuse / identical-password rule.
	KindPolicyViolation
	// KindStorage: file write/delete I/O error.
	KindStorage
	// KindTransactionAborted: a stage of a multi-step transaction failed.
	KindTransactionAborted
)

// String returns the machine-readable code for the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION_FAILURE"
	case KindUnsupportedMedia:
		return "UNSUPPORTED_MEDIA_TYPE"
	case KindNotFound:
		return "NOT_FOUND"
	case KindAuthMismatch:
		return "AUTHENTICATION_MISMATCH"
	case KindPolicyViolation:
		return "POLICY_VIOLATION"
	case KindStorage:
		return "STORAGE_FAILURE"
	case KindTransactionAborted:
		return "TRANSACTION_ABORTED"
	default:
		return "INTERNAL_ERROR"
	}
}

// Error is a typed application error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs an Error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf constructs an Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

// MessageOf returns the safe human message from err, or a generic fallback.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "something went wrong"
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
