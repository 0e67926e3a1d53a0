package core

import "errors"

// Kind classifies a LauncherError.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindStorage
	KindFormat
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindStorage:
		return "storage"
	case KindFormat:
		return "format"
	default:
		return "unknown"
	}
}

// LauncherError is the error type shared by validators, formatters and stores.
// Message is safe to show to clients; Err keeps the underlying cause.
type LauncherError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *LauncherError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *LauncherError) Unwrap() error {
	return e.Err
}

// NewValidationError builds a client-recoverable input error
func NewValidationError(msg string) *LauncherError {
	return &LauncherError{Kind: KindValidation, Message: msg}
}

// NewNotFoundError builds a missing-record error
func NewNotFoundError(msg string) *LauncherError {
	return &LauncherError{Kind: KindNotFound, Message: msg}
}

// NewStorageError wraps a failure of the underlying record store
func NewStorageError(msg string, err error) *LauncherError {
	return &LauncherError{Kind: KindStorage, Message: msg, Err: err}
}

// NewFormatError reports a persisted record that lacks an expected field
func NewFormatError(msg string) *LauncherError {
	return &LauncherError{Kind: KindFormat, Message: msg}
}

// KindOf returns the kind of the first LauncherError in err's chain, or 0.
func KindOf(err error) Kind {
	var le *LauncherError
	if errors.As(err, &le) {
		return le.Kind
	}
	return 0
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }

func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

func IsStorage(err error) bool { return KindOf(err) == KindStorage }

func IsFormat(err error) bool { return KindOf(err) == KindFormat }
