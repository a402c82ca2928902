package clierr

import (
	"errors"
	"net/http"

	"bastionctl/client"
)

// Type categorizes a CLI-facing error for consistent messaging & exit codes.
type Type string

const (
	Validation  Type = "validation"
	Auth        Type = "auth"
	NotFound    Type = "not_found"
	Unavailable Type = "unavailable"
	Internal    Type = "internal"
)

// Error is a structured user-facing error.
type Error struct {
	Type    Type
	Message string
	Err     error // optional underlying error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Err }

// New constructs a new CLI Error.
func New(t Type, msg string, err error) *Error { return &Error{Type: t, Message: msg, Err: err} }

// FromAPI maps a client failure to a CLI error with a message a user can act
// on. Status 401/403 means the session is gone; 503 means the appliance
// lacks the hardware or service for the request.
func FromAPI(err error) *Error {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return New(Internal, err.Error(), err)
	}
	switch apiErr.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return New(Auth, "Not logged in or session expired. Please run 'bastionctl login'.", err)
	case http.StatusNotFound:
		return New(NotFound, apiErr.Message, err)
	case http.StatusServiceUnavailable:
		return New(Unavailable, "The appliance does not support this operation: "+apiErr.Message, err)
	default:
		return New(Internal, apiErr.Message, err)
	}
}

// ExitCode maps an error type to a process exit code.
func ExitCode(e *Error) int {
	switch e.Type {
	case Validation:
		return 2
	case Auth:
		return 3
	case NotFound:
		return 4
	case Unavailable:
		return 5
	default:
		return 1
	}
}
