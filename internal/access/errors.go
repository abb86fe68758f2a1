package access

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the rejection taxonomy of the access layer. Every rejection carries
// the HTTP status it maps to; handlers translate it to a response exactly once.
type Error struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// AsError unwraps err into an *Error when it belongs to the taxonomy
func AsError(err error) (*Error, bool) {
	var accessErr *Error
	if errors.As(err, &accessErr) {
		return accessErr, true
	}
	return nil, false
}

// ErrAuthenticationFailed rejects a presented token that does not resolve to a
// live session. Used only on strict-authentication paths.
func ErrAuthenticationFailed() *Error {
	return &Error{Status: http.StatusUnauthorized, Message: "invalid or expired session"}
}

// ErrMethodNotAllowed rejects an HTTP method outside the endpoint's allowed set
func ErrMethodNotAllowed(method string) *Error {
	return &Error{Status: http.StatusMethodNotAllowed, Message: fmt.Sprintf("method %s is not allowed", method)}
}

// ErrUnauthenticated rejects a guest or inactive caller on an endpoint that requires login
func ErrUnauthenticated() *Error {
	return &Error{Status: http.StatusUnauthorized, Message: "authentication required"}
}

// ErrAdminRequired rejects a non-admin caller on an admin-only endpoint
func ErrAdminRequired() *Error {
	return &Error{Status: http.StatusForbidden, Message: "administrator privileges required"}
}

// ErrNoRuleConfigured rejects a caller whose role has no rule row for the
// resource. Names the pair so misconfiguration is visible to operators.
func ErrNoRuleConfigured(role, resource string) *Error {
	return &Error{
		Status:  http.StatusForbidden,
		Message: fmt.Sprintf("no access rules configured for role %q on resource %q", role, resource),
	}
}

// ErrObjectAccessDenied rejects an action the rule does not grant, or an
// ownership check that failed. Rule absence at this level surfaces identically.
func ErrObjectAccessDenied(message string) *Error {
	if message == "" {
		message = "access to this object is denied"
	}
	return &Error{Status: http.StatusForbidden, Message: message}
}

// ErrValidation rejects a malformed request body or serializer field errors
func ErrValidation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// ErrUnsupportedMedia rejects a request body with the wrong content type
func ErrUnsupportedMedia(message string) *Error {
	return &Error{Status: http.StatusUnsupportedMediaType, Message: message}
}

// ErrNotFound rejects a lookup of a missing or inactive target entity
func ErrNotFound(message string) *Error {
	if message == "" {
		message = "not found"
	}
	return &Error{Status: http.StatusNotFound, Message: message}
}
