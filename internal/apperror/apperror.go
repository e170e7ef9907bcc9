// Package apperror defines the typed failures a request can end with and
// their JSON serialization contract.
package apperror

import "net/http"

// statusLabel is the fixed status field every serialized error carries.
const statusLabel = "error"

// Serialized is the wire shape of a failed request:
// {message, statusCode, status}.
type Serialized struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Status     string `json:"status"`
}

// Error is a terminal, user-visible failure. The status code is fixed by the
// constructor; workflows must only raise errors created here.
type Error struct {
	Message    string
	StatusCode int
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Serialize returns the response body for this error.
func (e *Error) Serialize() Serialized {
	return Serialized{
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Status:     statusLabel,
	}
}

// NewValidation reports a request body that failed schema validation.
func NewValidation(message string) *Error {
	return &Error{Message: message, StatusCode: http.StatusBadRequest}
}

// NewBadRequest reports a request that is well formed but cannot be served.
func NewBadRequest(message string) *Error {
	return &Error{Message: message, StatusCode: http.StatusBadRequest}
}

// NewNotFound reports a missing resource.
func NewNotFound(message string) *Error {
	return &Error{Message: message, StatusCode: http.StatusNotFound}
}

// NewUnauthorized reports a request without a valid session.
func NewUnauthorized(message string) *Error {
	return &Error{Message: message, StatusCode: http.StatusUnauthorized}
}

// NewPayloadTooLarge reports a request body over the accepted size.
func NewPayloadTooLarge(message string) *Error {
	return &Error{Message: message, StatusCode: http.StatusRequestEntityTooLarge}
}

// NewInternal reports an unexpected server-side failure. The message should
// stay generic; internal detail belongs in logs, not responses.
func NewInternal(message string) *Error {
	return &Error{Message: message, StatusCode: http.StatusInternalServerError}
}
