package domain

import "errors"

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
)

// Loan errors
var (
	ErrLoanNotFound = errors.New("loan not found")
)

// User directory errors
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUserValidation = errors.New("user validation failed")
)

// Machine-readable error codes surfaced in API error bodies
const (
	CodeLoanNotFound  = "LOAN_NOT_FOUND"
	CodeUserNotFound  = "USER_NOT_FOUND"
	CodeValidation    = "VALIDATION_EXCEPTION"
	CodeClientFailure = "CLIENT_EXCEPTION"
)

// DirectoryError is returned by the user directory client. It carries the
// machine-readable code decoded from the directory's error body and unwraps
// to one of the sentinel errors above, so callers can switch on errors.Is.
type DirectoryError struct {
	Code    string
	Message string
	Kind    error
}

func (e *DirectoryError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

func (e *DirectoryError) Unwrap() error {
	return e.Kind
}
