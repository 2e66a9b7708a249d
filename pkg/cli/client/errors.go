package client

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes why an operation failed. Every kind is presented to
// the user the same way; the kind exists for logging and tests.
type ErrorKind string

const (
	KindValidation      ErrorKind = "validation"
	KindBackend         ErrorKind = "backend"
	KindTransport       ErrorKind = "transport"
	KindInvalidResponse ErrorKind = "invalid_response"
)

// Operation names used in errors and notifications.
const (
	OpListAgents   = "fetch agents"
	OpCreateAgent  = "create agent"
	OpDeleteAgent  = "delete agent"
	OpListWebpages = "fetch records"
	OpStartScrape  = "start scraping"
)

// ErrMissingAgentID is returned by agent-scoped operations called without an
// agent identifier. No request is sent.
var ErrMissingAgentID = errors.New("no agent ID provided")

// Error represents a failed client operation
type Error struct {
	Kind       ErrorKind
	Op         string
	Message    string
	StatusCode int
	Cause      error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (%d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(" (%v)", e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error for error unwrapping
func (e *Error) Unwrap() error {
	return e.Cause
}

// UserMessage returns the generic notification text for the failed operation.
// Validation failures name what is missing, since no request was attempted.
func (e *Error) UserMessage() string {
	if e.Kind == KindValidation && e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Failed to %s.", e.Op)
}

// MissingAgentError is the validation error for an agent-scoped operation
// attempted without an agent ID.
func MissingAgentError(op string) error {
	return newValidationError(op, ErrMissingAgentID)
}

// InvalidInputError is the validation error for input rejected before op
// sends a request.
func InvalidInputError(op string, cause error) error {
	return newValidationError(op, cause)
}

// IsKind reports whether err is a client error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == kind
}

// UserMessage converts any error into notification text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce.UserMessage()
	}
	return err.Error()
}

func newValidationError(op string, cause error) *Error {
	return &Error{
		Kind:    KindValidation,
		Op:      op,
		Message: capitalize(cause.Error()),
		Cause:   cause,
	}
}

func newBackendError(op string, status int, message string) *Error {
	return &Error{
		Kind:       KindBackend,
		Op:         op,
		Message:    message,
		StatusCode: status,
	}
}

func newTransportError(op string, cause error) *Error {
	return &Error{
		Kind:    KindTransport,
		Op:      op,
		Message: "request failed",
		Cause:   cause,
	}
}

func newInvalidResponseError(op string, cause error) *Error {
	return &Error{
		Kind:    KindInvalidResponse,
		Op:      op,
		Message: "failed to parse response",
		Cause:   cause,
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if c := s[0]; c >= 'a' && c <= 'z' {
		return string(c-'a'+'A') + s[1:]
	}
	return s
}
