// Package common defines the error taxonomy shared by the session and quiz
// layers. Callers should use errors.Is to match the kinds below and
// Message to obtain the text meant for the user.
package common

import (
	"errors"
)

var (
	// ErrValidationRejected: the server refused the credentials or payload,
	// or answered with a body that does not match the expected schema.
	ErrValidationRejected = errors.New("validation rejected")

	// ErrUnauthorized: authentication rejected or expired. The API client
	// has already torn the session down when a caller sees it.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrConnectivity: the request never reached the server or no response
	// could be parsed.
	ErrConnectivity = errors.New("connectivity")

	// ErrPreconditionFailed: rejected locally before any network call.
	ErrPreconditionFailed = errors.New("precondition failed")
)

// Failure is an error with a message meant for the user. Kind is one of the
// sentinels above, Err is the underlying cause (may be nil).
type Failure struct {
	Kind    error
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return f.Message
	}
	return f.Message + ": " + f.Err.Error()
}

// Is reports whether target is the failure kind.
func (f *Failure) Is(target error) bool {
	return f.Kind != nil && target == f.Kind
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// NewFailure builds a Failure of the given kind.
func NewFailure(kind error, message string, cause error) *Failure {
	return &Failure{Kind: kind, Message: message, Err: cause}
}

// Precondition is shorthand for a local PreconditionFailed rejection.
func Precondition(message string) *Failure {
	return &Failure{Kind: ErrPreconditionFailed, Message: message}
}

// Message returns the user-facing text of err: the Failure message when there
// is one in the chain, err.Error() otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var f *Failure
	if errors.As(err, &f) {
		return f.Message
	}
	return err.Error()
}
