package adapter

import "errors"

// Sentinel errors mapped from HTTP status codes by mapHTTPError.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrPaymentRequired     = errors.New("insufficient credits")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
)

// APIError carries the server-provided error message of a non-2xx response.
// The message is surfaced verbatim to the user; Unwrap returns the status
// sentinel so errors.Is keeps working across the sync layer.
type APIError struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	Details  string `json:"details,omitempty"`
	sentinel error
}

// NewAPIError builds an APIError for the given HTTP status code, with the
// matching sentinel attached.
func NewAPIError(code int, message, details string) *APIError {
	return &APIError{
		Code:     code,
		Message:  message,
		Details:  details,
		sentinel: sentinelForStatus(code),
	}
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// Unwrap exposes the status sentinel associated with the response code.
func (e *APIError) Unwrap() error {
	return e.sentinel
}
