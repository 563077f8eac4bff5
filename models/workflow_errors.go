package models

import (
	"fmt"

	"github.com/pkg/errors"
)

// Workflow errors returned by the request engine and its repository.
// Callers are expected to branch on these to pick an HTTP status.
var (
	ErrUsernameTaken          = errors.New("username already exists or has a pending request")
	ErrRequestNotFound        = errors.New("request not found")
	ErrDuplicateActiveRequest = errors.New("a pending request already exists for this subject")
)

// InvalidInputError marks a submission rejected before any persistence,
// caller error, not retryable as-is.
type InvalidInputError struct {
	Reason string
}

func (e InvalidInputError) Error() string {
	return e.Reason
}

func NewInvalidInput(format string, args ...interface{}) InvalidInputError {
	return InvalidInputError{Reason: fmt.Sprintf(format, args...)}
}

// AlreadyResolvedError is returned for a stale resolution attempt.
// Status holds the terminal status written by the resolution that won.
type AlreadyResolvedError struct {
	Status RequestStatus
}

func (e AlreadyResolvedError) Error() string {
	return fmt.Sprintf("request is already %s", e.Status)
}

// SideEffectError wraps a directory failure that happened while approving a
// request. The request stays pending, so the resolution is safe to retry.
type SideEffectError struct {
	Cause error
}

func (e SideEffectError) Error() string {
	return fmt.Sprintf("directory update failed, request left pending: %v", e.Cause)
}

func (e SideEffectError) Unwrap() error {
	return e.Cause
}

// DirectoryErrorKind classifies failures reported by the identity directory.
type DirectoryErrorKind string

const (
	DirectoryErrEmailInUse   DirectoryErrorKind = "email_in_use"
	DirectoryErrWeakPassword DirectoryErrorKind = "weak_password"
	DirectoryErrInvalidEmail DirectoryErrorKind = "invalid_email"
	DirectoryErrUnavailable  DirectoryErrorKind = "unavailable"
)

var directoryErrHumanName = map[DirectoryErrorKind]string{
	DirectoryErrEmailInUse:   "email is already in use",
	DirectoryErrWeakPassword: "password does not meet directory requirements",
	DirectoryErrInvalidEmail: "email address is not valid",
	DirectoryErrUnavailable:  "identity directory is unavailable",
}

type DirectoryError struct {
	Kind    DirectoryErrorKind
	Message string
}

func (e DirectoryError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if human, exist := directoryErrHumanName[e.Kind]; exist {
		return human
	}
	return string(e.Kind)
}
