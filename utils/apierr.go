package utils

import (
	"errors"
	"net/http"
)

// ErrorKind is the stable machine readable classification returned alongside
// the human readable message, so programmatic clients don't have to parse
// localized text.
type ErrorKind string

const (
	// Required environment configuration is absent. Fatal for the request.
	ErrorKindConfigMissing ErrorKind = "config_missing"
	// The caller sent missing or invalid fields and must correct and resend.
	ErrorKindInvalidInput ErrorKind = "invalid_input"
	// A referenced domain entity (user, post) does not exist. Reported as a
	// caller error, see StatusCode.
	ErrorKindNotFound ErrorKind = "not_found"
	// The operation may have been half applied (dual record writes). The
	// caller can retry, knowing a retry re-applies the visible half.
	ErrorKindRetryable ErrorKind = "retryable"
	// Collaborator or unexpected failure. The original error is logged, never
	// leaked to the caller.
	ErrorKindInternal ErrorKind = "internal"
)

// ApiError carries the response classification for a failed operation.
// Message is user facing, Err is the wrapped cause and stays server side.
type ApiError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ApiError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ApiError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind onto the response status. Domain not-found
// is reported as 400, not 404, matching the API's observed convention.
func (e *ApiError) StatusCode() int {
	switch e.Kind {
	case ErrorKindInvalidInput, ErrorKindNotFound:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func NewApiError(kind ErrorKind, message string) *ApiError {
	return &ApiError{Kind: kind, Message: message}
}

func WrapApiError(err error, kind ErrorKind, message string) *ApiError {
	return &ApiError{Kind: kind, Message: message, Err: err}
}

// AsApiError unwraps err into an *ApiError, or returns nil when err carries
// no classification.
func AsApiError(err error) *ApiError {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// IsKind reports whether err is an ApiError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	apiErr := AsApiError(err)
	return apiErr != nil && apiErr.Kind == kind
}
