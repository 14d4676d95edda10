package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies client errors.
type ErrorCode int

const (
	// ErrCodeInvalidArgument indicates a bad Send argument; no network call
	// was attempted.
	ErrCodeInvalidArgument ErrorCode = iota
	// ErrCodeCanceled indicates the pre-request hook vetoed the send; no
	// network call was attempted.
	ErrCodeCanceled
	// ErrCodeAuth indicates an authentication failure (401/403).
	ErrCodeAuth
	// ErrCodeNotFound indicates the resource was not found (404).
	ErrCodeNotFound
	// ErrCodeRateLimit indicates rate limiting (429).
	ErrCodeRateLimit
	// ErrCodeClient indicates another 4xx client error.
	ErrCodeClient
	// ErrCodeServer indicates a server-side error (5xx).
	ErrCodeServer
	// ErrCodeTransport indicates the network call itself failed.
	ErrCodeTransport
	// ErrCodeHook indicates the post-response hook failed.
	ErrCodeHook
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeInvalidArgument:
		return "invalid_argument"
	case ErrCodeCanceled:
		return "canceled"
	case ErrCodeAuth:
		return "auth"
	case ErrCodeNotFound:
		return "not_found"
	case ErrCodeRateLimit:
		return "rate_limit"
	case ErrCodeClient:
		return "client"
	case ErrCodeServer:
		return "server"
	case ErrCodeTransport:
		return "transport"
	case ErrCodeHook:
		return "hook"
	default:
		return "unknown"
	}
}

// Error is a structured client error with classification.
type Error struct {
	// StatusCode is the HTTP status code (0 for errors raised before or
	// instead of a response).
	StatusCode int
	// Code classifies the error.
	Code ErrorCode
	// Message describes the error.
	Message string
	// Body is the original response body (may be nil).
	Body []byte
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("client: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("client: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewInvalidArgumentError creates an invalid-argument error.
func NewInvalidArgumentError(msg string) *Error {
	return &Error{Code: ErrCodeInvalidArgument, Message: msg}
}

// NewCanceledError creates a request-canceled error.
func NewCanceledError(url string) *Error {
	return &Error{Code: ErrCodeCanceled, Message: fmt.Sprintf("request to %s canceled by pre-request hook", url)}
}

// NewTransportError wraps a failed network call.
func NewTransportError(err error) *Error {
	return &Error{Code: ErrCodeTransport, Message: err.Error(), Err: err}
}

// NewHookError wraps a post-response hook failure.
func NewHookError(err error) *Error {
	return &Error{Code: ErrCodeHook, Message: err.Error(), Err: err}
}

// ClassifyStatus converts an HTTP status into a typed error carrying the
// status code and a derived reason. It returns nil for 2xx statuses.
func ClassifyStatus(status int, body []byte) *Error {
	reason := http.StatusText(status)
	if reason == "" {
		reason = fmt.Sprintf("HTTP %d", status)
	}

	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &Error{StatusCode: status, Code: ErrCodeAuth, Message: reason, Body: body}
	case status == http.StatusNotFound:
		return &Error{StatusCode: status, Code: ErrCodeNotFound, Message: reason, Body: body}
	case status == http.StatusTooManyRequests:
		return &Error{StatusCode: status, Code: ErrCodeRateLimit, Message: reason, Body: body}
	case status >= 400 && status < 500:
		return &Error{StatusCode: status, Code: ErrCodeClient, Message: reason, Body: body}
	case status >= 500:
		return &Error{StatusCode: status, Code: ErrCodeServer, Message: reason, Body: body}
	default:
		return &Error{StatusCode: status, Code: ErrCodeClient, Message: reason, Body: body}
	}
}

// IsInvalidArgument checks if an error is an invalid-argument error.
func IsInvalidArgument(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeInvalidArgument
}

// IsCanceled checks if an error is a pre-request cancellation.
func IsCanceled(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeCanceled
}

// IsAuth checks if an error is an authentication error.
func IsAuth(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeAuth
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeNotFound
}

// IsRateLimit checks if an error is a rate-limit error.
func IsRateLimit(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeRateLimit
}

// IsServerError checks if an error is a server error.
func IsServerError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeServer
}

// IsTransport checks if an error is a transport failure.
func IsTransport(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeTransport
}

// IsHook checks if an error is a post-response hook failure.
func IsHook(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeHook
}

// IsHTTPStatus checks if an error came from a non-2xx response.
func IsHTTPStatus(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.StatusCode > 0
}
